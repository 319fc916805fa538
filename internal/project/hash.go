package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит составной ключ: H( part1 || part2 ... ).
// Порядок частей значим.
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// StringDigest hashes s; used for tags and rule digests inside keys.
func StringDigest(s string) Digest {
	return Digest(sha256.Sum256([]byte(s)))
}
