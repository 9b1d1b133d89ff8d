// Package cryptox implements the credential schemes understood by the
// account store: verbatim ("plain") storage, which is what existing tables
// contain, and argon2id hashes.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/common"
	"golang.org/x/crypto/argon2"
)

// Scheme names a way of storing credentials.
type Scheme string

const (
	// SchemePlain stores the credential as given. Known weakness, kept so
	// tables written by earlier deployments stay readable and comparable.
	SchemePlain Scheme = "plain"
	// SchemeArgon2id stores "$argon2id$<salt-hex>$<key-hex>".
	SchemeArgon2id Scheme = "argon2id"
)

const argon2Prefix = "$argon2id$"

const saltSize = 16

// ParseScheme validates a scheme name from configuration.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(s)) {
	case SchemePlain, "":
		return SchemePlain, nil
	case SchemeArgon2id:
		return SchemeArgon2id, nil
	default:
		return "", fmt.Errorf("unknown credential scheme %q", s)
	}
}

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashCredential encodes password for storage under scheme.
func HashCredential(scheme Scheme, password string) string {
	if scheme != SchemeArgon2id {
		return password
	}
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey([]byte(password), salt)
	return argon2Prefix + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key)
}

// VerifyCredential reports whether candidate matches the stored value. The
// scheme is detected from stored, so tables may mix both encodings.
func VerifyCredential(stored, candidate string) bool {
	if rest, ok := strings.CutPrefix(stored, argon2Prefix); ok {
		saltHex, keyHex, found := strings.Cut(rest, "$")
		if !found {
			return false
		}
		salt, err := hex.DecodeString(saltHex)
		if err != nil {
			return false
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return false
		}
		return subtle.ConstantTimeCompare(key, DeriveKey([]byte(candidate), salt)) == 1
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
