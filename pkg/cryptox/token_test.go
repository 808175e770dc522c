package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"128-bit token", TokenSize128},
		{"256-bit token", TokenSize256},
		{"custom size", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			// Verify token is unique (generate another and compare)
			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"zero size", 0},
		{"negative size", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.Error(t, err)
			require.Empty(t, token)
		})
	}
}

func TestMustGenerateToken_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustGenerateToken(0)
	})
}

func TestGenerateVerifier(t *testing.T) {
	verifier, err := GenerateVerifier()
	require.NoError(t, err)

	// 32 bytes base64url without padding is 43 chars
	require.Len(t, verifier, 43)

	raw, err := base64.RawURLEncoding.DecodeString(verifier)
	require.NoError(t, err)
	require.Len(t, raw, VerifierSize)
}

func TestDeriveChallenge(t *testing.T) {
	verifier, err := GenerateVerifier()
	require.NoError(t, err)

	c1 := DeriveChallenge(verifier)
	c2 := DeriveChallenge(verifier)

	// Challenge should be deterministic
	require.Equal(t, c1, c2, "challenge should be deterministic")
	require.NotEqual(t, verifier, c1)

	// Decoded challenge is a SHA-256 digest (32 bytes)
	raw, err := base64.RawURLEncoding.DecodeString(c1)
	require.NoError(t, err)
	require.Len(t, raw, 32)
}

func TestDeriveChallenge_KnownVector(t *testing.T) {
	// RFC 7636 appendix B test vector
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	require.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", DeriveChallenge(verifier))
}

func TestDeriveChallenge_EntropyQuality(t *testing.T) {
	// Distinct verifiers should never collide on their challenge
	const count = 100
	seen := make(map[string]bool, count)

	for i := 0; i < count; i++ {
		verifier, err := GenerateVerifier()
		require.NoError(t, err)

		challenge := DeriveChallenge(verifier)
		require.NotContains(t, seen, challenge, "duplicate challenge derived")
		seen[challenge] = true
	}
}
