package domain

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMalformedRedirect reports a captured redirect whose query does not
// have the exact shape the provider sends back: a state plus either a code
// or an error, nothing else. Anything unexpected is rejected rather than
// guessed at.
var ErrMalformedRedirect = errors.New("malformed redirect query")

// RedirectResult is the parsed outcome of an authorization redirect.
// Exactly one of Code or ErrorCode is set.
type RedirectResult struct {
	Code      string
	ErrorCode string
	State     string
}

// ParseRedirect parses a captured redirect URL into a RedirectResult.
// The query must contain exactly two parameters: state, and one of code or
// error, each appearing once.
func ParseRedirect(raw string) (RedirectResult, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return RedirectResult{}, fmt.Errorf("%w: %v", ErrMalformedRedirect, err)
	}

	query := u.Query()
	if len(query) != 2 {
		return RedirectResult{}, fmt.Errorf("%w: expected 2 query parameters, got %d", ErrMalformedRedirect, len(query))
	}
	for key, values := range query {
		if len(values) != 1 {
			return RedirectResult{}, fmt.Errorf("%w: parameter %q repeated", ErrMalformedRedirect, key)
		}
	}

	state := query.Get("state")
	if state == "" {
		return RedirectResult{}, fmt.Errorf("%w: missing state", ErrMalformedRedirect)
	}

	code := query.Get("code")
	errorCode := query.Get("error")
	if (code == "") == (errorCode == "") {
		return RedirectResult{}, fmt.Errorf("%w: expected exactly one of code or error", ErrMalformedRedirect)
	}

	return RedirectResult{
		Code:      code,
		ErrorCode: errorCode,
		State:     state,
	}, nil
}
