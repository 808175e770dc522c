package domain

import "time"

// ExpirySafetyMargin is the slack applied on top of the provider-reported
// access token lifetime when deciding whether a refresh is due.
const ExpirySafetyMargin = 60 * time.Second

// Credential is the persisted record of a completed authorization: the
// access/refresh token pair plus enough metadata to evaluate expiry. It is
// owned exclusively by the token manager and only ever replaced wholesale,
// never partially updated.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	IssuedAt     time.Time `json:"issued_at"`
}

// ExpiresAt returns the instant at which the credential stops being usable,
// including the safety margin.
func (c Credential) ExpiresAt() time.Time {
	return c.IssuedAt.Add(time.Duration(c.ExpiresIn)*time.Second + ExpirySafetyMargin)
}

// Expired reports whether the credential needs refreshing at the given
// instant. The boundary instant itself counts as expired.
func (c Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt())
}

// AuthorizationHeader renders the credential as an Authorization header
// value, e.g. "Bearer <access token>".
func (c Credential) AuthorizationHeader() string {
	tokenType := c.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + c.AccessToken
}
