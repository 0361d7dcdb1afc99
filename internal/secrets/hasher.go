package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Params are the argon2id cost parameters. They are injected from config at
// construction so the hasher never reads process environment itself.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// DefaultParams follows the argon2id recommendations from RFC 9106 for
// memory-constrained environments.
func DefaultParams() Params {
	return Params{
		Time:      3,
		MemoryKiB: 64 * 1024,
		Threads:   4,
		KeyLen:    32,
		SaltLen:   16,
	}
}

// Hasher derives and verifies salted password digests.
type Hasher struct {
	params Params
}

// NewHasher creates a Hasher with the given parameters. A salt length below
// 16 bytes is rejected.
func NewHasher(p Params) (*Hasher, error) {
	if p.SaltLen < 16 {
		return nil, fmt.Errorf("salt length %d below minimum of 16 bytes", p.SaltLen)
	}
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 || p.KeyLen == 0 {
		return nil, fmt.Errorf("argon2 parameters must be non-zero")
	}
	return &Hasher{params: p}, nil
}

// Hash derives a digest from the plaintext with a fresh random salt.
// The plaintext is never logged or returned.
func (h *Hasher) Hash(plaintext string) (digest, salt []byte, err error) {
	salt = make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	digest = argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)
	return digest, salt, nil
}

// Verify re-derives the digest for the candidate plaintext and compares it
// to the stored digest in constant time. A length mismatch returns false
// immediately; digest length is fixed by the scheme, not secret-dependent.
func (h *Hasher) Verify(plaintext string, digest, salt []byte) (bool, error) {
	if len(digest) == 0 || len(salt) == 0 {
		return false, fmt.Errorf("empty digest or salt")
	}
	candidate := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)
	if len(candidate) != len(digest) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(candidate, digest) == 1, nil
}
