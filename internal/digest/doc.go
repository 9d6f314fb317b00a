// Package digest computes content-addressing digests over complete byte
// streams.
//
// The algorithm set is closed: SHA-256, SHA-384 and SHA-512 are the secure
// defaults, SHA3 and BLAKE2b/BLAKE3 variants are available for stores that
// already key on them, and MD5/SHA-1 are retained only to match identifiers
// produced by external systems. New content addressing should use a 256-bit
// or larger digest.
//
// Equal digests imply byte-identical input up to the digest's collision
// probability, which makes Sum the only exact-identity primitive in this
// module. Perceptual and semantic closeness live in visualhash and
// semantichash.
package digest
