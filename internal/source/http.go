package source

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fereidani/httpdecompressor"
	"github.com/rs/dnscache"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultKeepAlive = 30 * time.Second
)

// Shared so repeated fetches of the same host skip DNS.
var resolver = &dnscache.Resolver{} //nolint:gochecknoglobals

// NewHTTPClient returns a client whose connections resolve hosts through a
// DNS cache and whose responses are decoded according to Content-Encoding
// (gzip, deflate, br, zstd and others).
func NewHTTPClient(timeout time.Duration) *http.Client {
	trans := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DisableCompression:  true,
		TLSHandshakeTimeout: timeout,
	}

	useDNSCacheDialer(trans, timeout, defaultKeepAlive)

	return &http.Client{
		Transport: &decompressor{roundTripper: trans},
		Timeout:   timeout,
	}
}

func useDNSCacheDialer(trans *http.Transport, timeout, keepAlive time.Duration) {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: keepAlive,
	}

	trans.DialContext = func(ctx context.Context, network string, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}

		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}

		var dialErrs []error

		for _, ip := range ips {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if err == nil {
				return conn, nil
			}

			dialErrs = append(dialErrs, err)
		}

		return nil, errors.Join(dialErrs...)
	}
}

type decompressor struct {
	roundTripper http.RoundTripper
}

func (d *decompressor) RoundTrip(request *http.Request) (*http.Response, error) {
	rsp, err := d.roundTripper.RoundTrip(request)
	if err != nil {
		return rsp, err
	}

	origBody := rsp.Body

	body, err := httpdecompressor.Reader(rsp)
	if err != nil {
		_ = origBody.Close()

		return nil, err
	}

	if body == origBody {
		return rsp, nil
	}

	rsp.Body = &decodedBody{Reader: body, decoder: body, orig: origBody}

	return rsp, nil
}

// decodedBody closes the decoder before the connection body.
type decodedBody struct {
	io.Reader

	decoder io.Closer
	orig    io.Closer
}

func (b *decodedBody) Close() error {
	return errors.Join(b.decoder.Close(), b.orig.Close())
}
