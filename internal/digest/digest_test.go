package digest

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSumKnownVectors(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		want string
	}{
		{SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{MD5, "900150983cd24fb0d6963f7d28e17f72"},
		{SHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
	}
	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			got, err := Sum(context.Background(), strings.NewReader("abc"), tt.alg)
			if err != nil {
				t.Fatalf("Sum: %v", err)
			}
			if hex.EncodeToString(got) != tt.want {
				t.Fatalf("Sum(abc) = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestSumLengthsMatchAlgorithmSize(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			got, err := Sum(context.Background(), strings.NewReader("payload"), alg)
			if err != nil {
				t.Fatalf("Sum: %v", err)
			}
			if len(got) != alg.Size() {
				t.Fatalf("len = %d, want %d", len(got), alg.Size())
			}
			again, err := SumBytes(alg, []byte("payload"))
			if err != nil {
				t.Fatalf("SumBytes: %v", err)
			}
			if !bytes.Equal(got, again) {
				t.Fatalf("Sum and SumBytes disagree: %x vs %x", got, again)
			}
		})
	}
}

func TestSumExactness(t *testing.T) {
	data := bytes.Repeat([]byte("content addressing "), 4096)
	changed := bytes.Clone(data)
	changed[len(changed)/2] ^= 0x01

	a, err := Sum(context.Background(), bytes.NewReader(data), SHA256)
	if err != nil {
		t.Fatalf("Sum a: %v", err)
	}
	b, err := Sum(context.Background(), bytes.NewReader(bytes.Clone(data)), SHA256)
	if err != nil {
		t.Fatalf("Sum b: %v", err)
	}
	c, err := Sum(context.Background(), bytes.NewReader(changed), SHA256)
	if err != nil {
		t.Fatalf("Sum c: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("identical content produced different digests")
	}
	if bytes.Equal(a, c) {
		t.Fatal("single-byte change produced the same digest")
	}
}

func TestSumRewindsSeekableSource(t *testing.T) {
	src := bytes.NewReader([]byte("rewind me please"))
	if _, err := src.Seek(7, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}
	got, n, err := SumCount(context.Background(), src, SHA256)
	if err != nil {
		t.Fatalf("SumCount: %v", err)
	}
	want, _ := SumBytes(SHA256, []byte("rewind me please"))
	if !bytes.Equal(got, want) {
		t.Fatalf("digest of partially consumed source = %x, want %x", got, want)
	}
	if n != int64(len("rewind me please")) {
		t.Fatalf("byte count = %d", n)
	}
}

func TestSumNonSeekableSource(t *testing.T) {
	src := io.MultiReader(strings.NewReader("ab"), strings.NewReader("c"))
	got, err := Sum(context.Background(), src, SHA256)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if hex.EncodeToString(got) != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("unexpected digest %x", got)
	}
}

func TestSumUnsupportedAlgorithm(t *testing.T) {
	_, err := Sum(context.Background(), strings.NewReader("x"), Algorithm("crc32"))
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Fatalf("error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestSumCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sum(ctx, strings.NewReader("x"), SHA256)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestSumReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Sum(context.Background(), io.MultiReader(strings.NewReader("abc"), errReader{boom}), SHA256)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped read error", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"sha256", SHA256, false},
		{"SHA-256", SHA256, false},
		{" sha512 ", SHA512, false},
		{"blake2b", BLAKE2b512, false},
		{"BLAKE3", BLAKE3, false},
		{"md5", MD5, false},
		{"whirlpool", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedAlgorithm) {
				t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLegacyAlgorithms(t *testing.T) {
	for _, alg := range Algorithms() {
		wantLegacy := alg == MD5 || alg == SHA1
		if alg.Legacy() != wantLegacy {
			t.Errorf("%s Legacy() = %v", alg, alg.Legacy())
		}
		if !wantLegacy && alg.Size() < 32 {
			t.Errorf("%s is not legacy but only %d bytes", alg, alg.Size())
		}
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
