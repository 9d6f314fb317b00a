package mimesniff

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestSignatureMatches(t *testing.T) {
	s := Signature{Pattern: []byte("WEBP"), MIMEType: "image/webp", Offset: 8}
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{"match at offset", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), true},
		{"exact length", []byte("RIFF\x00\x00\x00\x00WEBP"), true},
		{"too short", []byte("RIFF\x00\x00\x00\x00WEB"), false},
		{"wrong bytes", []byte("RIFF\x00\x00\x00\x00WAVE"), false},
		{"pattern at zero only", []byte("WEBP\x00\x00\x00\x00\x00\x00\x00\x00"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Matches(tt.header); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchPrefersLongestPattern(t *testing.T) {
	sigs := []Signature{
		sig("short/first", "AB"),
		sig("long/second", "ABCD"),
		sig("tie/third", "ABCE"),
	}
	got, ok := matchIn(sigs, []byte("ABCDEF"))
	if !ok || got.MIMEType != "long/second" {
		t.Fatalf("matchIn = %q, %v; want long/second", got.MIMEType, ok)
	}
}

func TestMatchTieKeepsRegistryOrder(t *testing.T) {
	sigs := []Signature{
		sig("first", "AB"),
		sigAt("second", 2, "CD"),
	}
	got, ok := matchIn(sigs, []byte("ABCD"))
	if !ok || got.MIMEType != "first" {
		t.Fatalf("matchIn = %q, want first", got.MIMEType)
	}
}

func TestMatchRegistryExamples(t *testing.T) {
	tar := make([]byte, 300)
	copy(tar[257:], "ustar")
	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg"},
		{"png", []byte("\x89PNG\r\n\x1A\n\x00\x00"), "image/png"},
		{"pdf", []byte("%PDF-1.7\n"), "application/pdf"},
		{"gif", []byte("GIF89a\x01\x00"), "image/gif"},
		{"heic beats mp4", []byte("\x00\x00\x00\x18ftypheic\x00\x00"), "image/heic"},
		{"generic mp4", []byte("\x00\x00\x00\x18ftypisom\x00\x00"), "video/mp4"},
		{"quicktime beats mp4", []byte("\x00\x00\x00\x14ftypqt  \x00\x00"), "video/quicktime"},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"wav", []byte("RIFF\x10\x00\x00\x00WAVEfmt "), "audio/wav"},
		{"tar", tar, "application/x-tar"},
		{"sqlite", []byte("SQLite format 3\x00\x10\x00"), "application/vnd.sqlite3"},
		{"utf8 bom", []byte("\xEF\xBB\xBFhello"), "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.header)
			if !ok || got.MIMEType != tt.want {
				t.Fatalf("Match = %q (ok=%v), want %q", got.MIMEType, ok, tt.want)
			}
		})
	}
}

func bmpHeader(dibSize uint32) []byte {
	h := make([]byte, 54)
	copy(h, "BM")
	binary.LittleEndian.PutUint32(h[2:], 54)
	binary.LittleEndian.PutUint32(h[10:], 54)
	binary.LittleEndian.PutUint32(h[14:], dibSize)
	return h
}

func peHeader(lfanew uint32, sig string) []byte {
	h := make([]byte, 0x100)
	copy(h, "MZ")
	binary.LittleEndian.PutUint32(h[0x3C:], lfanew)
	if int(lfanew)+len(sig) <= len(h) {
		copy(h[lfanew:], sig)
	}
	return h
}

func TestMatchShortMagicNeedsStructure(t *testing.T) {
	const (
		bmp = "image/bmp"
		pe  = "application/vnd.microsoft.portable-executable"
	)
	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"bmp info header", bmpHeader(40), bmp},
		{"bmp v5 header", bmpHeader(124), bmp},
		{"bmp unknown dib size", bmpHeader(7), ""},
		{"text starting BM", []byte("BMW service schedule for the spring season"), ""},
		{"pe", peHeader(0x80, "PE\x00\x00"), pe},
		{"pe header beyond prefix", peHeader(0x400, ""), pe},
		{"mz without pe signature", peHeader(0x80, "NE\x00\x00"), ""},
		{"mz with tiny lfanew", peHeader(0x10, ""), ""},
		{"text starting MZ", []byte("MZ notes: the quick brown fox jumps over the lazy dog again and again"), ""},
		{"short mz", []byte("MZ\x90\x00"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.header)
			if tt.want == "" {
				if ok {
					t.Fatalf("Match = %q, want no match", got.MIMEType)
				}
				return
			}
			if !ok || got.MIMEType != tt.want {
				t.Fatalf("Match = %q (ok=%v), want %q", got.MIMEType, ok, tt.want)
			}
		})
	}
}

func TestMatchUnknown(t *testing.T) {
	if got, ok := Match([]byte("plain words here")); ok {
		t.Fatalf("expected no match, got %q", got.MIMEType)
	}
}

func TestHeaderLenCoversRegistry(t *testing.T) {
	for _, s := range Signatures() {
		if s.Offset+len(s.Pattern) > HeaderLen() {
			t.Fatalf("signature %q extends past HeaderLen %d", s.MIMEType, HeaderLen())
		}
	}
	if HeaderLen() != 262 {
		t.Fatalf("HeaderLen = %d, want 262 (tar magic)", HeaderLen())
	}
}

func TestSignaturesReturnsCopy(t *testing.T) {
	sigs := Signatures()
	if len(sigs) != len(registry) {
		t.Fatalf("len = %d, want %d", len(sigs), len(registry))
	}
	sigs[0].Pattern[0] ^= 0xFF
	sigs[0].MIMEType = "mutated"
	if registry[0].MIMEType == "mutated" || bytes.Equal(registry[0].Pattern, sigs[0].Pattern) {
		t.Fatal("Signatures exposed the registry")
	}
}
