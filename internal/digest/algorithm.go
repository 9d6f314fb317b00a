package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedAlgorithm is returned for selectors outside the closed algorithm set.
var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

// Algorithm names a digest function.
type Algorithm string

const (
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b256 Algorithm = "blake2b-256"
	BLAKE2b512 Algorithm = "blake2b-512"
	BLAKE3     Algorithm = "blake3"

	// MD5 and SHA1 exist for interoperability with external identifiers only.
	MD5  Algorithm = "md5"
	SHA1 Algorithm = "sha1"
)

// Default is the algorithm used when none is configured.
const Default = SHA256

var algorithmSizes = map[Algorithm]int{
	SHA256:     sha256.Size,
	SHA384:     sha512.Size384,
	SHA512:     sha512.Size,
	SHA3_256:   32,
	SHA3_512:   64,
	BLAKE2b256: blake2b.Size256,
	BLAKE2b512: blake2b.Size,
	BLAKE3:     32,
	MD5:        md5.Size,
	SHA1:       sha1.Size,
}

var algorithmAliases = map[string]Algorithm{
	"sha-256":    SHA256,
	"sha-384":    SHA384,
	"sha-512":    SHA512,
	"sha3_256":   SHA3_256,
	"sha3_512":   SHA3_512,
	"blake2b256": BLAKE2b256,
	"blake2b512": BLAKE2b512,
	"blake2b":    BLAKE2b512,
	"sha-1":      SHA1,
}

// Algorithms lists every supported algorithm, secure variants first.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA384, SHA512, SHA3_256, SHA3_512, BLAKE2b256, BLAKE2b512, BLAKE3, MD5, SHA1}
}

// ParseAlgorithm resolves a case-insensitive algorithm name or alias.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := algorithmAliases[normalized]; ok {
		return alias, nil
	}
	alg := Algorithm(normalized)
	if !alg.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// Valid reports whether a is part of the supported set.
func (a Algorithm) Valid() bool {
	_, ok := algorithmSizes[a]
	return ok
}

// Size returns the digest length in bytes, or 0 for unsupported algorithms.
func (a Algorithm) Size() int {
	return algorithmSizes[a]
}

// Legacy reports whether a is kept only for interoperability.
func (a Algorithm) Legacy() bool {
	return a == MD5 || a == SHA1
}

func (a Algorithm) String() string {
	return string(a)
}

// New returns a fresh hash.Hash for a.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case SHA3_512:
		return sha3.New512(), nil
	case BLAKE2b256:
		return blake2b.New256(nil)
	case BLAKE2b512:
		return blake2b.New512(nil)
	case BLAKE3:
		return blake3.New(), nil
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}
}
