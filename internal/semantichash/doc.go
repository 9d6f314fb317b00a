// Package semantichash computes 64-bit SimHash fingerprints of text.
//
// Each case-folded token is hashed with xxHash64 and votes on every bit
// position: +1 where its hash has a one, -1 where it has a zero. A result bit
// is set when its vote total is positive. Texts that share most of their
// tokens land within a few bits of each other, so the Hamming distance between
// two hashes tracks how much wording changed. Zero means no text was
// available; it is returned for empty input and for decode failures.
package semantichash
