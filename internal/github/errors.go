package github

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// InvalidInputError is returned for unusable usernames, before any network
// call is made.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// UserNotFoundError is returned when the API reports 404 for the username.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user '%s' not found", e.Username)
}

// RateLimitedError is returned when the API rejects the request due to rate
// limiting. ResetAt is zero when the API didn't say when the quota resets.
type RateLimitedError struct {
	ResetAt time.Time
}

func (e *RateLimitedError) Error() string {
	if e.ResetAt.IsZero() {
		return "GitHub API rate limit exceeded"
	}
	return fmt.Sprintf("GitHub API rate limit exceeded, resets %s", humanize.Time(e.ResetAt))
}

// APIError is returned for any other non-2xx response.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API request failed with status %d", e.StatusCode)
}

// NetworkError is returned when the request never produced an HTTP response
// (connection failure, timeout, cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a 200 response body is not an event feed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid response from GitHub API: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
