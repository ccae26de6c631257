package source_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/amp-labs/amp-sortedlist/internal/source"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = "add 3 1 2\nlist\nremove-at 2\nlist\n"

func compressGzip(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func compressZstd(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func compressBrotli(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	w := brotli.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func compressLZ4(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func compressSnappy(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	w := snappy.NewBufferedWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestLoad_Files(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		compress func(*testing.T, []byte) []byte
	}{
		{name: "plain", file: "script.txt"},
		{name: "gzip", file: "script.txt.gz", compress: compressGzip},
		{name: "zstd", file: "script.zst", compress: compressZstd},
		{name: "brotli", file: "script.BR", compress: compressBrotli},
		{name: "lz4", file: "script.lz4", compress: compressLZ4},
		{name: "snappy", file: "script.sz", compress: compressSnappy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := []byte(script)
			if tt.compress != nil {
				data = tt.compress(t, data)
			}

			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			got, err := source.NewLoader().Load(t.Context(), path)
			require.NoError(t, err)
			assert.Equal(t, script, string(got))
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := source.NewLoader().Load(t.Context(), filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.gz")
	require.NoError(t, os.WriteFile(corrupt, []byte("not gzip at all"), 0o600))

	_, err = source.NewLoader().Load(t.Context(), corrupt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), corrupt)
}

func TestLoad_Stdin(t *testing.T) {
	t.Parallel()

	got, err := source.NewLoader(source.WithStdin(strings.NewReader(script))).Load(t.Context(), source.Stdin)
	require.NoError(t, err)
	assert.Equal(t, script, string(got))
}

func TestLoad_HTTP(t *testing.T) {
	t.Parallel()

	gzipped := compressGzip(t, []byte(script))
	brotlied := compressBrotli(t, []byte(script))

	mux := http.NewServeMux()
	mux.HandleFunc("/plain", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, script)
	})
	mux.HandleFunc("/gzip", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(gzipped)
	})
	mux.HandleFunc("/br", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(brotlied)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such script", http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	loader := source.NewLoader()

	for _, path := range []string{"/plain", "/gzip", "/br"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			got, err := loader.Load(t.Context(), server.URL+path)
			require.NoError(t, err)
			assert.Equal(t, script, string(got))
		})
	}

	t.Run("/missing", func(t *testing.T) {
		t.Parallel()

		_, err := loader.Load(t.Context(), server.URL+"/missing")
		require.ErrorIs(t, err, source.ErrHTTPStatus)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestToUTF8(t *testing.T) {
	t.Parallel()

	t.Run("utf-8 passes through", func(t *testing.T) {
		t.Parallel()

		got, label := source.ToUTF8([]byte("add café\n"), "")
		assert.Equal(t, "add café\n", string(got))
		assert.Equal(t, "utf-8", label)
	})

	t.Run("explicit charset", func(t *testing.T) {
		t.Parallel()

		got, label := source.ToUTF8([]byte("add caf\xe9\n"), "iso-8859-1")
		assert.Equal(t, "add café\n", string(got))
		assert.Equal(t, "iso-8859-1", label)
	})

	t.Run("detected charset", func(t *testing.T) {
		t.Parallel()

		latin1 := []byte("# liste tri\xe9e des caf\xe9s pr\xe9f\xe9r\xe9s, class\xe9e par ann\xe9e\n" +
			"add caf\xe9 th\xe9 cr\xe8me br\xfbl\xe9e g\xe2teau p\xe2tisserie\n" +
			"add \xe9t\xe9 hiver printemps automne d\xe9j\xe0 tr\xe8s\n" +
			"list\n")

		got, label := source.ToUTF8(latin1, "")
		assert.True(t, utf8.Valid(got))
		assert.NotEqual(t, "utf-8", label)
		assert.Contains(t, string(got), "list\n")
	})
}

func TestLoad_Charset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte("add caf\xe9\n"), 0o600))

	got, err := source.NewLoader(source.WithCharset("latin1")).Load(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "add café\n", string(got))
}
