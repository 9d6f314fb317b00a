package visualhash_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"contentprint/internal/similarity"
	"contentprint/internal/testsupport"
	"contentprint/internal/visualhash"
)

const (
	pattern          = 0b10110010
	unrelatedPattern = ^byte(pattern)
)

func TestFromImageBandPatterns(t *testing.T) {
	for _, p := range []byte{0x00, 0xFF, pattern, 0x0F, 0x81} {
		if got, want := visualhash.FromImage(testsupport.BandImage(p)), testsupport.BandHash(p); got != want {
			t.Fatalf("pattern %08b: hash = %016x, want %016x", p, got, want)
		}
	}
}

func TestFromImageRamp(t *testing.T) {
	if got := visualhash.FromImage(testsupport.Ramp(90, 80, false)); got != 0 {
		t.Fatalf("rising ramp = %016x, want 0", got)
	}
	if got := visualhash.FromImage(testsupport.Ramp(90, 80, true)); got != ^uint64(0) {
		t.Fatalf("falling ramp = %016x, want all ones", got)
	}
}

func TestFromImageBitOrder(t *testing.T) {
	// Only the first row falls, so only the top byte is set.
	if got := visualhash.FromImage(testsupport.BandImage(0x80)); got != 0xFF00000000000000 {
		t.Fatalf("hash = %016x, want first row in the most significant byte", got)
	}
}

func TestFromImageColorMatchesGray(t *testing.T) {
	gray := testsupport.BandImage(pattern)
	if got, want := visualhash.FromImage(testsupport.ToRGBA(gray)), visualhash.FromImage(gray); got != want {
		t.Fatalf("rgba hash = %016x, gray hash = %016x", got, want)
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := testsupport.BandImage(pattern)
	shifted := img.SubImage(img.Bounds()).(*image.Gray)
	moved := &image.Gray{Pix: shifted.Pix, Stride: shifted.Stride, Rect: shifted.Rect.Add(image.Pt(100, 50))}
	if got, want := visualhash.FromImage(moved), testsupport.BandHash(pattern); got != want {
		t.Fatalf("hash = %016x, want %016x", got, want)
	}
}

func TestFromImageEmpty(t *testing.T) {
	if got := visualhash.FromImage(nil); got != 0 {
		t.Fatalf("nil image = %016x", got)
	}
	if got := visualhash.FromImage(image.NewGray(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Fatalf("empty image = %016x", got)
	}
}

func TestFromImageUniformIsZero(t *testing.T) {
	flat := image.NewGray(image.Rect(0, 0, 32, 24))
	for i := range flat.Pix {
		flat.Pix[i] = 0x80
	}
	if got := visualhash.FromImage(flat); got != 0 {
		t.Fatalf("uniform image = %016x, want 0", got)
	}
}

func TestComputeDecodesPNG(t *testing.T) {
	h := visualhash.New(visualhash.Options{})
	data := testsupport.EncodePNG(t, testsupport.BandImage(pattern))
	if got, want := h.Compute(bytes.NewReader(data)), testsupport.BandHash(pattern); got != want {
		t.Fatalf("Compute = %016x, want %016x", got, want)
	}
}

func TestVisualStability(t *testing.T) {
	h := visualhash.New(visualhash.Options{})
	th := similarity.DefaultThresholds()

	original := testsupport.BandImage(pattern)
	base := h.Compute(bytes.NewReader(testsupport.EncodePNG(t, original)))

	edited := testsupport.BandImage(pattern)
	edited.SetGray(100, 100, color.Gray{Y: 255})
	nearDuplicate := h.Compute(bytes.NewReader(testsupport.EncodeJPEG(t, edited, 60)))
	if d := similarity.Distance(base, nearDuplicate); d > th.Low {
		t.Fatalf("re-encoded image moved %d bits, want <= %d", d, th.Low)
	}

	unrelated := h.Compute(bytes.NewReader(testsupport.EncodePNG(t, testsupport.BandImage(unrelatedPattern))))
	if d := similarity.Distance(base, unrelated); d < th.High {
		t.Fatalf("unrelated image only %d bits away, want >= %d", d, th.High)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	h := visualhash.New(visualhash.Options{})
	data := testsupport.EncodeJPEG(t, testsupport.BandImage(pattern), 90)
	first := h.Compute(bytes.NewReader(data))
	second := h.Compute(bytes.NewReader(data))
	if first != second {
		t.Fatalf("Compute not stable: %016x vs %016x", first, second)
	}
}

func TestComputeSoftFailures(t *testing.T) {
	failing := visualhash.DecoderFunc(func(io.Reader) (image.Image, error) {
		return nil, errors.New("unsupported")
	})
	tests := []struct {
		name string
		h    *visualhash.Hasher
		src  io.Reader
	}{
		{"nil source", visualhash.New(visualhash.Options{}), nil},
		{"garbage bytes", visualhash.New(visualhash.Options{}), bytes.NewReader([]byte("definitely not an image"))},
		{"truncated png", visualhash.New(visualhash.Options{}), bytes.NewReader(testsupport.EncodePNG(t, testsupport.BandImage(pattern))[:40])},
		{"decoder error", visualhash.New(visualhash.Options{Decoder: failing}), bytes.NewReader([]byte{0xFF, 0xD8, 0xFF})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Compute(tt.src); got != 0 {
				t.Fatalf("Compute = %016x, want 0", got)
			}
		})
	}
}

func TestComputeCustomDecoder(t *testing.T) {
	fixed := visualhash.DecoderFunc(func(io.Reader) (image.Image, error) {
		return testsupport.BandImage(0x0F), nil
	})
	h := visualhash.New(visualhash.Options{Decoder: fixed})
	if got, want := h.Compute(bytes.NewReader(nil)), testsupport.BandHash(0x0F); got != want {
		t.Fatalf("Compute = %016x, want %016x", got, want)
	}
}
