package source

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const utf8Label = "utf-8"

// ToUTF8 converts data to UTF-8 and reports the character set it was read
// as. A non-empty label is tried first. Otherwise valid UTF-8 is returned
// unchanged and anything else has its character set detected. Data that
// can't be decoded is returned unchanged.
func ToUTF8(data []byte, label string) ([]byte, string) {
	if label == "" && utf8.Valid(data) {
		return data, utf8Label
	}

	if label != "" {
		if decoded, ok := decode(data, label); ok {
			return decoded, label
		}
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return data, utf8Label
	}

	if decoded, ok := decode(data, best.Charset); ok {
		return decoded, best.Charset
	}

	return data, utf8Label
}

func decode(data []byte, label string) ([]byte, bool) {
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	decoded, err := io.ReadAll(r)
	if err != nil || !utf8.Valid(decoded) {
		return nil, false
	}

	return decoded, true
}
