package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash encoding: %s", hash)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password did not verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password verified")
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"", "plaintext", "$argon2id$v=19$m=bad$x$y"} {
		if VerifyPassword(h, "anything") {
			t.Fatalf("malformed hash %q verified", h)
		}
	}
}
