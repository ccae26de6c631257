// Package source loads command scripts for the sortedlist command. A script
// location is "-" (standard input), an http or https URL, or a file path.
// Files are decompressed by extension, HTTP bodies by Content-Encoding, and
// the result is converted to UTF-8.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/amp-labs/amp-sortedlist/logger"
)

// ErrHTTPStatus is returned when a script URL answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Stdin is the location naming standard input.
const Stdin = "-"

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the client used for URL locations.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithStdin sets the reader used for the "-" location.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithCharset sets the character set scripts are written in. Without it,
// input that isn't valid UTF-8 has its character set detected.
func WithCharset(label string) Option {
	return func(l *Loader) {
		l.charset = label
	}
}

// Loader reads scripts from their locations.
type Loader struct {
	client  *http.Client
	stdin   io.Reader
	charset string
}

// NewLoader creates a Loader. By default URLs are fetched with NewHTTPClient
// and "-" reads os.Stdin.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{stdin: os.Stdin}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = NewHTTPClient(defaultTimeout)
	}

	return l
}

// Load returns the UTF-8 text of the script at location.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case location == Stdin:
		data, err = io.ReadAll(l.stdin)
	case isURL(location):
		data, err = l.fetch(ctx, location)
	default:
		data, err = readFile(location)
	}

	if err != nil {
		return nil, err
	}

	text, charset := ToUTF8(data, l.charset)

	logger.Get(ctx).Debug("script loaded",
		"location", location, "bytes", len(data), "charset", charset)

	return text, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	rsp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rsp.Body.Close()
	}()

	if rsp.StatusCode < http.StatusOK || rsp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s: %s", ErrHTTPStatus, url, rsp.Status)
	}

	return io.ReadAll(rsp.Body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	r, err := decompress(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	defer func() {
		_ = r.Close()
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return data, nil
}
