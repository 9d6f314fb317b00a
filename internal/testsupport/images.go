package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

const (
	// BandBlock is the edge length in pixels of one cell of a band image.
	BandBlock = 32
	bandCols  = 9
	bandRows  = 8
)

// BandImage builds a grayscale image made of 9x8 flat cells. Row r brightens
// left to right when bit 7-r of pattern is clear and darkens when it is set,
// so its difference hash is exactly BandHash(pattern).
func BandImage(pattern byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, bandCols*BandBlock, bandRows*BandBlock))
	for row := range bandRows {
		descending := pattern&(0x80>>row) != 0
		for col := range bandCols {
			level := uint8(40 + 20*col)
			if descending {
				level = uint8(200 - 20*col)
			}
			for y := row * BandBlock; y < (row+1)*BandBlock; y++ {
				for x := col * BandBlock; x < (col+1)*BandBlock; x++ {
					img.SetGray(x, y, color.Gray{Y: level})
				}
			}
		}
	}
	return img
}

// BandHash returns the difference hash BandImage(pattern) produces.
func BandHash(pattern byte) uint64 {
	var hash uint64
	for row := range bandRows {
		hash <<= 8
		if pattern&(0x80>>row) != 0 {
			hash |= 0xFF
		}
	}
	return hash
}

// Ramp builds a horizontal gradient. Brightness rises left to right unless
// falling is set.
func Ramp(width, height int, falling bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			v := x * 255 / max(width-1, 1)
			if falling {
				v = 255 - v
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// ToRGBA copies img into an RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// EncodePNG returns img encoded as PNG.
func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// EncodeJPEG returns img encoded as JPEG at the given quality.
func EncodeJPEG(t testing.TB, img image.Image, quality int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}
