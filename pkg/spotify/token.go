package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenResponse represents the accounts-service token endpoint response per
// RFC 6749. Returned for both authorization_code and refresh_token grants.
type TokenResponse struct {
	// AccessToken is the short-lived credential for Web API calls
	AccessToken string `json:"access_token"`

	// TokenType is the authorization scheme, "Bearer" in practice
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope,omitempty"`

	// RefreshToken may be omitted on refresh responses, in which case the
	// prior refresh token remains valid
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ExchangeAuthorizationCode trades an authorization code and its PKCE
// verifier for a token pair (grant type authorization_code).
func (c *Client) ExchangeAuthorizationCode(
	ctx context.Context,
	code, redirectURI, codeVerifier string,
) (*TokenResponse, error) {
	data := url.Values{
		"client_id":     {c.ClientID},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"code_verifier": {codeVerifier},
	}

	return c.requestToken(ctx, data)
}

// RefreshGrant requests a new token pair using a refresh token (grant type
// refresh_token). Per PKCE semantics the submitted refresh token is
// single-use; the response may carry a replacement.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"client_id":     {c.ClientID},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	return c.requestToken(ctx, data)
}

func (c *Client) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.accountsURL("/api/token"),
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, bodyBytes)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(bodyBytes, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &tokenResp, nil
}
