package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// VerifierSize is the PKCE code verifier entropy in bytes per RFC 7636.
const VerifierSize = TokenSize256

// GenerateToken creates a cryptographically secure random token of the
// specified byte length. The token is returned as a base64url-encoded
// string (URL-safe, no padding). Returns an error if the random number
// generator fails.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error.
// Use this only during initialization or in contexts where failure is
// unrecoverable.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// GenerateVerifier creates a PKCE code verifier: 32 random bytes from a
// cryptographically secure source, base64url-encoded without padding.
func GenerateVerifier() (string, error) {
	verifier, err := GenerateToken(VerifierSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate code verifier: %w", err)
	}
	return verifier, nil
}

// DeriveChallenge computes the S256 PKCE code challenge for a verifier:
// BASE64URL(SHA256(ASCII(verifier))), no padding. Deterministic and pure.
func DeriveChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
