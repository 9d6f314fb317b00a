package visualhash

import (
	"image"
	"io"
	"log/slog"

	"golang.org/x/image/draw"

	"contentprint/internal/logging"
)

const (
	gridWidth  = 9
	gridHeight = 8
)

// Options configures a Hasher.
type Options struct {
	Decoder Decoder
	Logger  *slog.Logger
}

// Hasher computes difference hashes. It is safe for concurrent use on
// independent sources.
type Hasher struct {
	decoder Decoder
	logger  *slog.Logger
}

// New creates a Hasher. A nil decoder selects DefaultDecoder.
func New(opts Options) *Hasher {
	if opts.Decoder == nil {
		opts.Decoder = DefaultDecoder
	}
	return &Hasher{
		decoder: opts.Decoder,
		logger:  logging.NewComponentLogger(opts.Logger, "visualhash"),
	}
}

// Compute decodes src from its current position and returns its difference
// hash, or 0 when src is nil or not a decodable image.
func (h *Hasher) Compute(src io.Reader) uint64 {
	if src == nil {
		return 0
	}
	img, err := h.decoder.Decode(src)
	if err != nil {
		h.logger.Debug("image decode failed; visual hash unavailable", logging.Error(err))
		return 0
	}
	return FromImage(img)
}

// FromImage returns the difference hash of img, or 0 for a nil or empty image.
// An image with no pixel darker than its right neighbour, such as a uniform
// fill, also hashes to 0 and cannot be told apart from a missing hash.
func FromImage(img image.Image) uint64 {
	if img == nil || img.Bounds().Empty() {
		return 0
	}
	grid := image.NewGray(image.Rect(0, 0, gridWidth, gridHeight))
	draw.BiLinear.Scale(grid, grid.Bounds(), toGray(img), img.Bounds(), draw.Src, nil)

	var hash uint64
	for y := range gridHeight {
		row := grid.Pix[y*grid.Stride : y*grid.Stride+gridWidth]
		for x := range gridWidth - 1 {
			hash <<= 1
			if row[x] > row[x+1] {
				hash |= 1
			}
		}
	}
	return hash
}

// toGray converts img to 8-bit luminance using the ITU-R 601 weights of
// color.GrayModel.
func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray
}
