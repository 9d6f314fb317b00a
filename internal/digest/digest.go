package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const copyChunkSize = 1 << 20

// Sum hashes src from its first byte to EOF with alg.
//
// Seekable sources are rewound first. The context is checked before reading
// and between chunks, so long streams can be abandoned mid-read.
func Sum(ctx context.Context, src io.Reader, alg Algorithm) ([]byte, error) {
	digest, _, err := SumCount(ctx, src, alg)
	return digest, err
}

// SumCount is Sum that also reports how many bytes were hashed.
func SumCount(ctx context.Context, src io.Reader, alg Algorithm) ([]byte, int64, error) {
	h, err := alg.New()
	if err != nil {
		return nil, 0, err
	}
	if src == nil {
		return nil, 0, errors.New("digest: nil source")
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, 0, fmt.Errorf("rewind source: %w", err)
		}
	}

	buf := make([]byte, copyChunkSize)
	var total int64
	for {
		select {
		case <-ctx.Done():
			return nil, total, ctx.Err()
		default:
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
			total += int64(n)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, total, fmt.Errorf("read source: %w", readErr)
		}
	}
	return h.Sum(nil), total, nil
}

// SumBytes hashes an in-memory buffer.
func SumBytes(alg Algorithm, data []byte) ([]byte, error) {
	h, err := alg.New()
	if err != nil {
		return nil, err
	}
	_, _ = h.Write(data)
	return h.Sum(nil), nil
}
