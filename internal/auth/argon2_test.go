package auth

import (
	"strings"
	"testing"
)

func TestHashToken_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashToken("st_live_abcdef_0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("hash should be in PHC format, got: %s", hash)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Errorf("PHC string should have 6 parts, got %d", len(parts))
	}
}

func TestHashToken_UniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashToken("same-token")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	h2, err := HashToken("same-token")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}

	if h1 == h2 {
		t.Error("hashes of the same token should differ (random salt)")
	}
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	token := "st_test_abcdef_0123456789abcdef0123456789abcdef"
	hash, err := HashToken(token)
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}

	match, err := VerifyToken(token, hash)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if !match {
		t.Error("token should match its own hash")
	}

	match, err = VerifyToken("st_test_abcdef_ffffffffffffffffffffffffffffffff", hash)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if match {
		t.Error("wrong token should not match")
	}
}

func TestVerifyToken_InvalidHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not_phc", "plain-hash"},
		{"wrong_algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"missing_parts", "$argon2id$v=19$m=65536,t=3,p=4"},
		{"bad_salt", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := VerifyToken("token", test.hash); err == nil {
				t.Errorf("expected error for hash %q", test.hash)
			}
		})
	}
}

func TestQuickHash(t *testing.T) {
	t.Parallel()

	h := QuickHash("some-input")
	if len(h) != 32 {
		t.Errorf("QuickHash length = %d, want 32", len(h))
	}
	if h != QuickHash("some-input") {
		t.Error("QuickHash must be deterministic")
	}
	if h == QuickHash("other-input") {
		t.Error("QuickHash of different inputs should differ")
	}
}
