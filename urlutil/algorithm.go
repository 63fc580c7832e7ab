package urlutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha3"
	"crypto/sha512"
	"hash"
	"hash/crc32"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/md4"       //nolint:staticcheck // md4 is offered for compatibility with existing fingerprints
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // same as md4
)

// Algorithm names a digest used for fingerprints.
// Names follow the common hash registry spelling (sha256, sha3-256, crc32b, xxh64).
type Algorithm string

const (
	MD4       Algorithm = "md4"
	MD5       Algorithm = "md5"
	SHA1      Algorithm = "sha1"
	SHA224    Algorithm = "sha224"
	SHA256    Algorithm = "sha256"
	SHA384    Algorithm = "sha384"
	SHA512    Algorithm = "sha512"
	SHA512224 Algorithm = "sha512/224"
	SHA512256 Algorithm = "sha512/256"
	SHA3224   Algorithm = "sha3-224"
	SHA3256   Algorithm = "sha3-256"
	SHA3384   Algorithm = "sha3-384"
	SHA3512   Algorithm = "sha3-512"
	RIPEMD160 Algorithm = "ripemd160"
	CRC32B    Algorithm = "crc32b"
	FNV132    Algorithm = "fnv132"
	FNV1A32   Algorithm = "fnv1a32"
	FNV164    Algorithm = "fnv164"
	FNV1A64   Algorithm = "fnv1a64"
	XXH64     Algorithm = "xxh64"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = SHA256

var hashConstructors = map[Algorithm]func() hash.Hash{
	MD4:       md4.New,
	MD5:       md5.New,
	SHA1:      sha1.New,
	SHA224:    sha256.New224,
	SHA256:    sha256.New,
	SHA384:    sha512.New384,
	SHA512:    sha512.New,
	SHA512224: sha512.New512_224,
	SHA512256: sha512.New512_256,
	SHA3224:   func() hash.Hash { return sha3.New224() },
	SHA3256:   func() hash.Hash { return sha3.New256() },
	SHA3384:   func() hash.Hash { return sha3.New384() },
	SHA3512:   func() hash.Hash { return sha3.New512() },
	RIPEMD160: ripemd160.New,
	CRC32B:    func() hash.Hash { return crc32.NewIEEE() },
	FNV132:    func() hash.Hash { return fnv.New32() },
	FNV1A32:   func() hash.Hash { return fnv.New32a() },
	FNV164:    func() hash.Hash { return fnv.New64() },
	FNV1A64:   func() hash.Hash { return fnv.New64a() },
	XXH64:     func() hash.Hash { return xxhash.New() },
}

// ParseAlgorithm resolves a digest name, ignoring case and surrounding space.
func ParseAlgorithm(name string) (Algorithm, error) {
	algo := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := hashConstructors[algo]; !ok {
		return "", &UnsupportedAlgorithmError{Name: name}
	}
	return algo, nil
}

// Algorithms returns every supported digest name, sorted.
func Algorithms() []Algorithm {
	algos := make([]Algorithm, 0, len(hashConstructors))
	for algo := range hashConstructors {
		algos = append(algos, algo)
	}
	slices.Sort(algos)
	return algos
}

func (a Algorithm) String() string { return string(a) }

func (a Algorithm) newHash() (hash.Hash, error) {
	newFn, ok := hashConstructors[a]
	if !ok {
		return nil, &UnsupportedAlgorithmError{Name: string(a)}
	}
	return newFn(), nil
}
