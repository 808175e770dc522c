package spotify

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents a non-success response from either Spotify surface.
// The accounts service reports OAuth2 error codes per RFC 6749; the Web API
// nests its message under an "error" object. Both are mapped here.
type APIError struct {
	// StatusCode is the HTTP status code of the failed response.
	StatusCode int

	// Code is the OAuth2 error code (e.g. "invalid_grant") when the
	// accounts service provided one, empty otherwise.
	Code string

	// Description is a human-readable description of the failure.
	Description string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("spotify: %s: %s (status %d)", e.Code, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("spotify: request failed with status %d: %s", e.StatusCode, e.Description)
}

// newAPIError builds an APIError from a non-2xx response body, trying the
// accounts-service shape first, then the Web API shape, then falling back
// to the raw body.
func newAPIError(resp *http.Response, body []byte) *APIError {
	var oauthErr struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &oauthErr); err == nil && oauthErr.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        oauthErr.Error,
			Description: oauthErr.ErrorDescription,
		}
	}

	var apiErr struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Description: apiErr.Error.Message,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Description: string(body),
	}
}
