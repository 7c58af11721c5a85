package github

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the repository list request
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindOther       ErrorKind = "other"
)

// RateLimitMessage is surfaced to callers when the API refuses unauthenticated traffic.
const RateLimitMessage = "GitHub API rate limit exceeded. Please configure a GitHub token and try again."

// UpstreamError is returned when the source-hosting API answers with a non-2xx status.
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an UpstreamError of kind not_found
func IsNotFound(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr) && upstreamErr.Kind == KindNotFound
}

// IsRateLimited reports whether err is an UpstreamError of kind rate_limited
func IsRateLimited(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr) && upstreamErr.Kind == KindRateLimited
}
