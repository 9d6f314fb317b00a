package fingerprint

import (
	"bytes"

	"contentprint/internal/similarity"
)

// Comparison holds per-dimension verdicts for two fingerprints.
type Comparison struct {
	IdenticalContent bool               `json:"identical_content"`
	Visual           similarity.Verdict `json:"visual"`
	VisualDistance   int                `json:"visual_distance"`
	Semantic         similarity.Verdict `json:"semantic"`
	SemanticDistance int                `json:"semantic_distance"`
}

// unavailableDistance is reported when either side lacks a hash.
const unavailableDistance = 64

// Compare classifies a against b. Content is identical only when both
// digests exist, use the same algorithm, and match. A visual or semantic
// dimension missing on either side is reported as Different.
func Compare(a, b *Fingerprint, th similarity.Thresholds) Comparison {
	cmp := Comparison{
		Visual:           similarity.Different,
		VisualDistance:   unavailableDistance,
		Semantic:         similarity.Different,
		SemanticDistance: unavailableDistance,
	}
	if a == nil || b == nil {
		return cmp
	}
	cmp.IdenticalContent = a.HasDigest() && b.HasDigest() &&
		a.Algorithm == b.Algorithm &&
		bytes.Equal(a.CryptographicHash, b.CryptographicHash)

	if a.HasVisual() && b.HasVisual() {
		cmp.VisualDistance = similarity.Distance(a.VisualHash, b.VisualHash)
		cmp.Visual = similarity.Compare(a.VisualHash, b.VisualHash, th)
	}
	if a.HasSemantic() && b.HasSemantic() {
		cmp.SemanticDistance = similarity.Distance(a.SemanticHash, b.SemanticHash)
		cmp.Semantic = similarity.Compare(a.SemanticHash, b.SemanticHash, th)
	}
	return cmp
}
