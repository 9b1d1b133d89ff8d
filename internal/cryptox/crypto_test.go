package cryptox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashCredential_PlainIsVerbatim(t *testing.T) {
	assert.Equal(t, "pw1", HashCredential(SchemePlain, "pw1"))
}

func TestHashCredential_Argon2idFormat(t *testing.T) {
	h := HashCredential(SchemeArgon2id, "pw1")
	require.True(t, strings.HasPrefix(h, "$argon2id$"))
	parts := strings.Split(strings.TrimPrefix(h, "$argon2id$"), "$")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 2*saltSize)
	assert.Len(t, parts[1], 64)

	assert.NotEqual(t, h, HashCredential(SchemeArgon2id, "pw1"), "salt must differ per call")
}

func TestVerifyCredential(t *testing.T) {
	hashed := HashCredential(SchemeArgon2id, "pw1")

	tests := []struct {
		name      string
		stored    string
		candidate string
		want      bool
	}{
		{"plain match", "pw1", "pw1", true},
		{"plain mismatch", "pw1", "pw2", false},
		{"plain is case sensitive", "pw1", "PW1", false},
		{"plain no trimming", "pw1", "pw1 ", false},
		{"argon2id match", hashed, "pw1", true},
		{"argon2id mismatch", hashed, "pw2", false},
		{"argon2id malformed", "$argon2id$zz", "pw1", false},
		{"argon2id bad hex", "$argon2id$zz$yy", "pw1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyCredential(tt.stored, tt.candidate))
		})
	}
}

func TestParseScheme(t *testing.T) {
	s, err := ParseScheme("")
	require.NoError(t, err)
	assert.Equal(t, SchemePlain, s)

	s, err = ParseScheme("ARGON2ID")
	require.NoError(t, err)
	assert.Equal(t, SchemeArgon2id, s)

	_, err = ParseScheme("md5")
	require.Error(t, err)
}
