package fingerprint

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"contentprint/internal/digest"
)

// Fingerprint summarizes one source. Zero visual or semantic hashes mean the
// content could not be decoded as an image or as text.
type Fingerprint struct {
	MIMEType string
	// Size is the number of bytes digested; zero when the digest pass failed.
	Size              int64
	Algorithm         digest.Algorithm
	CryptographicHash []byte
	VisualHash        uint64
	SemanticHash      uint64
}

// HasDigest reports whether the digest pass completed.
func (f *Fingerprint) HasDigest() bool {
	return f != nil && len(f.CryptographicHash) > 0
}

// HasVisual reports whether a visual hash is available. A uniform image hashes
// to 0 as well, so it reports false and Compare treats it as having no visual
// hash.
func (f *Fingerprint) HasVisual() bool {
	return f != nil && f.VisualHash != 0
}

// HasSemantic reports whether a semantic hash is available. Text whose token
// votes cancel on every bit hashes to 0 and also reports false.
func (f *Fingerprint) HasSemantic() bool {
	return f != nil && f.SemanticHash != 0
}

// DigestHex returns the cryptographic hash in lowercase hex.
func (f *Fingerprint) DigestHex() string {
	if f == nil {
		return ""
	}
	return hex.EncodeToString(f.CryptographicHash)
}

type jsonFingerprint struct {
	MIMEType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Algorithm    string `json:"algorithm"`
	Digest       string `json:"digest,omitempty"`
	VisualHash   string `json:"visual_hash,omitempty"`
	SemanticHash string `json:"semantic_hash,omitempty"`
}

// MarshalJSON renders digests and hashes as hex. Unavailable hashes are
// omitted.
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	out := jsonFingerprint{
		MIMEType:  f.MIMEType,
		Size:      f.Size,
		Algorithm: f.Algorithm.String(),
		Digest:    hex.EncodeToString(f.CryptographicHash),
	}
	if f.VisualHash != 0 {
		out.VisualHash = FormatHash(f.VisualHash)
	}
	if f.SemanticHash != 0 {
		out.SemanticHash = FormatHash(f.SemanticHash)
	}
	return json.Marshal(out)
}

func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	var in jsonFingerprint
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	parsed := Fingerprint{MIMEType: in.MIMEType, Size: in.Size}
	if in.Algorithm != "" {
		alg, err := digest.ParseAlgorithm(in.Algorithm)
		if err != nil {
			return err
		}
		parsed.Algorithm = alg
	}
	if in.Digest != "" {
		sum, err := hex.DecodeString(in.Digest)
		if err != nil {
			return fmt.Errorf("digest: %w", err)
		}
		parsed.CryptographicHash = sum
	}
	var err error
	if in.VisualHash != "" {
		if parsed.VisualHash, err = ParseHash(in.VisualHash); err != nil {
			return fmt.Errorf("visual_hash: %w", err)
		}
	}
	if in.SemanticHash != "" {
		if parsed.SemanticHash, err = ParseHash(in.SemanticHash); err != nil {
			return fmt.Errorf("semantic_hash: %w", err)
		}
	}
	*f = parsed
	return nil
}

// FormatHash renders a 64-bit hash as 16 lowercase hex digits.
func FormatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// ParseHash parses up to 16 hex digits, with or without a 0x prefix.
func ParseHash(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	if trimmed == "" || len(trimmed) > 16 {
		return 0, fmt.Errorf("invalid 64-bit hash %q", s)
	}
	v, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid 64-bit hash %q: %w", s, err)
	}
	return v, nil
}
