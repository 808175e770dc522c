package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCredentialExpiry_Boundary(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := Credential{
		AccessToken: "acc",
		ExpiresIn:   3600,
		IssuedAt:    issued,
	}

	boundary := issued.Add(3600*time.Second + ExpirySafetyMargin)

	// Exactly at issuedAt + expiresIn + margin the token counts as expired
	require.True(t, cred.Expired(boundary))

	// One second earlier it is still valid
	require.False(t, cred.Expired(boundary.Add(-time.Second)))

	// Well past, clearly expired
	require.True(t, cred.Expired(boundary.Add(time.Hour)))
}

func TestAuthorizationHeader(t *testing.T) {
	cred := Credential{AccessToken: "acc", TokenType: "Bearer"}
	require.Equal(t, "Bearer acc", cred.AuthorizationHeader())

	// Missing token type falls back to Bearer
	cred.TokenType = ""
	require.Equal(t, "Bearer acc", cred.AuthorizationHeader())
}

func TestParseTargetPreference(t *testing.T) {
	require.Equal(t, TargetApp, ParseTargetPreference("app"))
	require.Equal(t, TargetWeb, ParseTargetPreference("web"))
	require.Equal(t, TargetWeb, ParseTargetPreference(""))
	require.Equal(t, TargetWeb, ParseTargetPreference("desktopish"))
}
