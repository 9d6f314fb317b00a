package semantichash

import (
	"io"
	"log/slog"

	"github.com/cespare/xxhash/v2"

	"contentprint/internal/logging"
	"contentprint/internal/textutil"
)

const defaultMaxBytes = 64 << 20

// Options configures a Hasher.
type Options struct {
	Decoder TextDecoder
	// MaxBytes caps how much of a source is decoded (default: 64 MiB). See
	// Hasher.Compute for how a cut source is hashed.
	MaxBytes int64
	Logger   *slog.Logger
}

// Hasher computes SimHash values from readers. It is safe for concurrent use
// on independent sources.
type Hasher struct {
	decoder  TextDecoder
	maxBytes int64
	logger   *slog.Logger
}

// New creates a Hasher. A nil decoder selects DefaultTextDecoder.
func New(opts Options) *Hasher {
	if opts.Decoder == nil {
		opts.Decoder = DefaultTextDecoder
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	return &Hasher{
		decoder:  opts.Decoder,
		maxBytes: opts.MaxBytes,
		logger:   logging.NewComponentLogger(opts.Logger, "semantichash"),
	}
}

// Compute decodes src from its current position and returns its SimHash, or
// 0 when src is nil, cannot be decoded, or holds no tokens.
//
// Only the first MaxBytes bytes of src are hashed. When src is longer, the
// last token before the cap is dropped because it may be cut mid-word or
// mid-rune. At most one byte past the cap is read from src.
func (h *Hasher) Compute(src io.Reader) uint64 {
	if src == nil {
		return 0
	}
	capped := &capReader{r: src, remaining: h.maxBytes}
	text, err := h.decoder.DecodeText(capped)
	if err != nil {
		h.logger.Debug("text decode failed; semantic hash unavailable", logging.Error(err))
		return 0
	}
	if capped.truncated {
		h.logger.Debug("source exceeds semantic byte cap; hashing prefix", slog.Int64("max_bytes", h.maxBytes))
		text = textutil.TrimPartialToken(text)
	}
	return FromText(text)
}

// capReader is an io.LimitedReader that also records whether the
// underlying reader had data past the limit.
type capReader struct {
	r         io.Reader
	remaining int64
	checked   bool
	truncated bool
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		if !c.checked {
			c.checked = true
			var next [1]byte
			n, _ := io.ReadFull(c.r, next[:])
			c.truncated = n > 0
		}
		return 0, io.EOF
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	return n, err
}

// FromText returns the SimHash of text.
func FromText(text string) uint64 {
	return FromTokens(textutil.Tokenize(text))
}

// FromTokens returns the SimHash of already tokenized text. Token order does
// not matter; repeated tokens carry proportionally more weight.
func FromTokens(tokens []string) uint64 {
	if len(tokens) == 0 {
		return 0
	}
	var votes [64]int
	for _, token := range tokens {
		sum := xxhash.Sum64String(token)
		for bit := range votes {
			if sum&(1<<bit) != 0 {
				votes[bit]++
			} else {
				votes[bit]--
			}
		}
	}
	var hash uint64
	for bit, v := range votes {
		if v > 0 {
			hash |= 1 << bit
		}
	}
	return hash
}
