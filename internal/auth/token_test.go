package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionToken_Live(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken(EnvLive)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if !strings.HasPrefix(tok.Plaintext, "st_live_") {
		t.Errorf("token should start with st_live_, got: %s", tok.Plaintext)
	}

	if len(tok.Prefix) != TokenPrefixLen {
		t.Errorf("prefix should be %d chars, got: %d", TokenPrefixLen, len(tok.Prefix))
	}

	if tok.Hash == "" {
		t.Error("hash should not be empty")
	}
	if !strings.HasPrefix(tok.Hash, "$argon2id$v=") {
		t.Errorf("hash should be in PHC format, got: %s", tok.Hash)
	}

	if !strings.Contains(tok.Plaintext, tok.Prefix) {
		t.Error("plaintext should contain prefix")
	}
}

func TestGenerateSessionToken_Test(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken(EnvTest)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if !strings.HasPrefix(tok.Plaintext, "st_test_") {
		t.Errorf("token should start with st_test_, got: %s", tok.Plaintext)
	}
}

func TestGenerateSessionToken_DefaultsToLive(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("staging")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if !strings.HasPrefix(tok.Plaintext, "st_live_") {
		t.Errorf("unknown env should default to live, got: %s", tok.Plaintext)
	}
}

func TestParseSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken(EnvLive)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	parsed, err := ParseSessionToken(tok.Plaintext)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}

	if parsed.Env != EnvLive {
		t.Errorf("Env = %s, want %s", parsed.Env, EnvLive)
	}
	if parsed.Prefix != tok.Prefix {
		t.Errorf("Prefix = %s, want %s", parsed.Prefix, tok.Prefix)
	}
	if len(parsed.Secret) != TokenSecretLen {
		t.Errorf("Secret length = %d, want %d", len(parsed.Secret), TokenSecretLen)
	}
}

func TestParseSessionToken_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong_prefix", "pk_live_abcdef_0123456789abcdef0123456789abcdef"},
		{"bad_env", "st_prod_abcdef_0123456789abcdef0123456789abcdef"},
		{"short_secret", "st_live_abcdef_0123456789abcdef"},
		{"uppercase_hex", "st_live_ABCDEF_0123456789ABCDEF0123456789ABCDEF"},
		{"trailing_data", "st_live_abcdef_0123456789abcdef0123456789abcdef extra"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseSessionToken(test.token); err == nil {
				t.Errorf("expected error for %q", test.token)
			}
			if ValidTokenFormat(test.token) {
				t.Errorf("ValidTokenFormat(%q) should be false", test.token)
			}
		})
	}
}
