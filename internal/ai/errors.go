// README: Typed error taxonomy for gateway failures.
package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means no API credential was supplied at startup.
	ErrNotConfigured = errors.New("ai client not configured")
	// ErrTimeout means the network request to the service timed out.
	ErrTimeout = errors.New("ai request timed out")
	// ErrConnection means the service could not be reached at all.
	ErrConnection = errors.New("ai connection failed")
	// ErrMalformed means the model output could not be parsed or validated
	// into the required shape, even after the recovery pass.
	ErrMalformed = errors.New("malformed ai response")
	// ErrUpstream is the sentinel that UpstreamError unwraps to.
	ErrUpstream = errors.New("ai service error")
	// ErrUnexpected is the catch-all for anything not classified above.
	ErrUnexpected = errors.New("unexpected ai failure")
)

// UpstreamError carries the status code of a failed service call along with
// a human-readable cause. errors.Is(err, ErrUpstream) matches it.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Cause(), e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// Cause maps the status code onto the user-facing failure category.
func (e *UpstreamError) Cause() string {
	switch e.StatusCode {
	case 400:
		return "invalid request to AI service (misconfigured request)"
	case 401:
		return "authentication error with AI service (check API key)"
	case 402:
		return "payment required for AI service (account issue or spending limit)"
	case 403:
		return "request forbidden by AI service (input token limit or permissions)"
	case 404:
		return "AI model or endpoint not found"
	case 429:
		return "AI service rate limit hit"
	case 500:
		return "AI server error"
	case 503:
		return "AI engine overloaded"
	}
	if e.Message != "" {
		return fmt.Sprintf("AI service error: %s", e.Message)
	}
	return "AI service error"
}
