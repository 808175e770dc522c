package spotify

import (
	"fmt"
	"net/url"
)

// ChallengeMethod is the only PKCE challenge method Spotify accepts.
const ChallengeMethod = "S256"

// BuildAuthorizeURL constructs the authorization URL for the PKCE
// authorization code flow. The URL is meant to be opened in the user's
// external browser; after the user approves, the browser lands on
// redirectURI carrying the code and state in its query.
//
// The verifier matching the challenge must be kept for the later
// ExchangeAuthorizationCode call.
func (c *Client) BuildAuthorizeURL(redirectURI, state, challenge string) string {
	params := url.Values{}
	params.Set("client_id", c.ClientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", redirectURI)
	params.Set("code_challenge_method", ChallengeMethod)
	params.Set("code_challenge", challenge)
	params.Set("state", state)

	return fmt.Sprintf("%s?%s", c.accountsURL("/authorize"), params.Encode())
}
