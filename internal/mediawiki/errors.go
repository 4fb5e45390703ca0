package mediawiki

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidArgument is returned when a page lookup is requested with
// neither or both of page id and title. It is never retried.
var ErrInvalidArgument = errors.New("exactly one of page id or title must be provided")

// StatusError reports a non-200 response. The retry loop treats it the
// same as a transport failure; no status code is special-cased.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// DecodeError reports a response body that did not match the expected
// API schema. It bypasses the retry loop: a malformed body is not a
// transient condition.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ExhaustedError is returned once every retry attempt has failed. It
// carries the request so callers can log what was being fetched.
type ExhaustedError struct {
	URL      string
	Params   url.Values
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch %s?%s failed after %d attempts: %v", e.URL, e.Params.Encode(), e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
