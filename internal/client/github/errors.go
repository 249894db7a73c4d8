package github

import "fmt"

// APIError carries the HTTP status alongside GitHub's error message so the
// retry executor can recognize the secondary-rate-limit signal.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: %s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}
