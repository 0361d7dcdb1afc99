package secrets

import (
	"bytes"
	"testing"
	"time"
)

// testParams keeps argon2 cheap so the suite stays fast.
func testParams() Params {
	return Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
}

func TestNewHasherRejectsShortSalt(t *testing.T) {
	p := testParams()
	p.SaltLen = 8
	if _, err := NewHasher(p); err == nil {
		t.Fatal("expected error for salt below 16 bytes")
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h, err := NewHasher(testParams())
	if err != nil {
		t.Fatal(err)
	}

	digest, salt, err := h.Hash("p@ss")
	if err != nil {
		t.Fatal(err)
	}
	if len(salt) != 16 {
		t.Fatalf("salt length = %d, want 16", len(salt))
	}
	if len(digest) != 32 {
		t.Fatalf("digest length = %d, want 32", len(digest))
	}

	ok, err := h.Verify("p@ss", digest, salt)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("verify of exact plaintext = false, want true")
	}
}

func TestVerifyRejectsSingleCharVariations(t *testing.T) {
	h, _ := NewHasher(testParams())
	digest, salt, err := h.Hash("p@ss")
	if err != nil {
		t.Fatal(err)
	}

	for _, guess := range []string{"P@ss", "p@sS", "p@s", "p@sss", "q@ss", ""} {
		ok, err := h.Verify(guess, digest, salt)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("verify(%q) = true, want false", guess)
		}
	}
}

func TestHashGeneratesFreshSalt(t *testing.T) {
	h, _ := NewHasher(testParams())
	d1, s1, err := h.Hash("same")
	if err != nil {
		t.Fatal(err)
	}
	d2, s2, err := h.Hash("same")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(s1, s2) {
		t.Error("two hashes of the same plaintext reused a salt")
	}
	if bytes.Equal(d1, d2) {
		t.Error("distinct salts should produce distinct digests")
	}
}

func TestVerifyErrorsOnMissingMaterial(t *testing.T) {
	h, _ := NewHasher(testParams())
	if _, err := h.Verify("x", nil, []byte("0123456789abcdef")); err == nil {
		t.Error("expected error for empty digest")
	}
	if _, err := h.Verify("x", []byte("d"), nil); err == nil {
		t.Error("expected error for empty salt")
	}
}

// Verification time for a wrong guess of the correct length should stay in
// the same ballpark as a correct guess; the KDF dominates either way.
func TestVerifyTimingIsGuessIndependent(t *testing.T) {
	if testing.Short() {
		t.Skip("timing measurement skipped in short mode")
	}
	h, _ := NewHasher(testParams())
	digest, salt, err := h.Hash("correct horse")
	if err != nil {
		t.Fatal(err)
	}

	const rounds = 10
	measure := func(guess string) time.Duration {
		start := time.Now()
		for i := 0; i < rounds; i++ {
			if _, err := h.Verify(guess, digest, salt); err != nil {
				t.Fatal(err)
			}
		}
		return time.Since(start) / rounds
	}

	right := measure("correct horse")
	wrong := measure("battery stapl") // same length, wrong value

	ratio := float64(right) / float64(wrong)
	if ratio < 0.2 || ratio > 5.0 {
		t.Errorf("verify timing ratio correct/wrong = %.2f, outside tolerance", ratio)
	}
}
