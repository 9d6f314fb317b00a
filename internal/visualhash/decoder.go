package visualhash

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder turns encoded bytes into an image.
type Decoder interface {
	Decode(r io.Reader) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.Reader) (image.Image, error)

func (f DecoderFunc) Decode(r io.Reader) (image.Image, error) {
	return f(r)
}

// DefaultDecoder recognises JPEG, PNG, GIF, BMP, TIFF and WebP.
var DefaultDecoder Decoder = DecoderFunc(func(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
})
