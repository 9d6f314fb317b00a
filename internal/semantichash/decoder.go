package semantichash

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextDecoder turns raw bytes into text.
type TextDecoder interface {
	DecodeText(r io.Reader) (string, error)
}

// TextDecoderFunc adapts a function to TextDecoder.
type TextDecoderFunc func(r io.Reader) (string, error)

func (f TextDecoderFunc) DecodeText(r io.Reader) (string, error) {
	return f(r)
}

// DefaultTextDecoder reads UTF-8, honouring a UTF-8 or UTF-16 byte order
// mark. Invalid sequences become U+FFFD.
var DefaultTextDecoder TextDecoder = TextDecoderFunc(decodeUnicode)

func decodeUnicode(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
