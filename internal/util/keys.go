package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DigestLen is the length of a hex-encoded SHA-256 digest.
const DigestLen = sha256.Size * 2

// Digest returns hex(sha256(salt + key)). Go strings are byte sequences, so a
// UTF-8 key hashes to the same digest on every platform.
func Digest(salt, key string) string {
	sum := sha256.Sum256([]byte(salt + key))
	return hex.EncodeToString(sum[:])
}

// MemoryKey is the hot-tier key for an entry. Digests already depend on the
// salt; the prefix only keeps shared stores (redis) readable.
func MemoryKey(salt, digest string) string {
	return "diskcache:" + salt + ":" + digest
}

// IsDigest reports whether s looks like a Digest result.
func IsDigest(s string) bool {
	if len(s) != DigestLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// SplitEntryName splits "<digest>.<rest>" and reports whether the prefix is a digest.
func SplitEntryName(name string) (digest, rest string, ok bool) {
	digest, rest, found := strings.Cut(name, ".")
	if !found || !IsDigest(digest) {
		return "", "", false
	}
	return digest, rest, true
}
