// Package fingerprint combines MIME sniffing, a cryptographic digest, a
// visual hash and a semantic hash into one Fingerprint per source.
//
// The Aggregator reads a seekable source in sequential passes, rewinding
// before each one and restoring the caller's read position at the end. The
// visual and semantic passes never fail: content that is not an image or not
// text simply yields a zero hash. A failed digest pass does not stop the
// others; the partial fingerprint is returned with an error wrapping
// ErrIncomplete. Compare turns two fingerprints into per-dimension verdicts.
package fingerprint
