// Package spotify is a minimal client for the two Spotify surfaces the
// share-links feature needs: the accounts service (authorization code +
// PKCE token grants) and the Web API (track metadata and album artwork).
package spotify

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultAccountsURL is the Spotify accounts service base URL.
	DefaultAccountsURL = "https://accounts.spotify.com"

	// DefaultAPIURL is the Spotify Web API base URL.
	DefaultAPIURL = "https://api.spotify.com"
)

// Client talks to the Spotify accounts service and Web API. A single Client
// is safe for concurrent use; independent fetches share one rate limiter so
// bursts of resolutions don't hammer the provider.
type Client struct {
	AccountsURL string
	APIURL      string
	ClientID    string
	HTTPClient  *http.Client

	limiter *rate.Limiter
}

// NewClient creates a Spotify client for the given OAuth2 client ID with
// sane defaults: 10s request timeout, 10 req/s sustained with small bursts.
func NewClient(clientID string) *Client {
	return &Client{
		AccountsURL: DefaultAccountsURL,
		APIURL:      DefaultAPIURL,
		ClientID:    clientID,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

// accountsURL builds a complete accounts-service URL from a path.
func (c *Client) accountsURL(path string) string {
	return strings.TrimSuffix(c.AccountsURL, "/") + path
}

// apiURL builds a complete Web API URL from a path.
func (c *Client) apiURL(path string) string {
	return strings.TrimSuffix(c.APIURL, "/") + path
}
