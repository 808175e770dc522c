package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Track is the subset of the Web API track object the share panel renders.
type Track struct {
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Album        Album        `json:"album"`
	Artists      []Artist     `json:"artists"`
	URI          string       `json:"uri"`
}

// ExternalURLs carries the provider's web-facing link for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Album holds the cover image variants of a track's album.
type Album struct {
	Images []Image `json:"images"`
}

// Image is one cover variant. Spotify publishes several sizes per album.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist is a track credit; only the display name matters here.
type Artist struct {
	Name string `json:"name"`
}

// GetTrack fetches track metadata by ID. The authorization argument is the
// full header value, e.g. "Bearer <access token>".
func (c *Client) GetTrack(ctx context.Context, authorization, trackID string) (*Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.apiURL("/v1/tracks/"+trackID),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", authorization)

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

	var track Track
	if err := json.Unmarshal(bodyBytes, &track); err != nil {
		return nil, fmt.Errorf("failed to decode track response: %w", err)
	}

	return &track, nil
}

// FetchImage downloads raw image bytes from an absolute URL, typically one
// of the album cover variants returned by GetTrack.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp, bodyBytes)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	return data, nil
}
