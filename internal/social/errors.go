package social

import (
	"fmt"
	"strings"
)

// MissingCredentialError is returned when required configuration is missing.
type MissingCredentialError struct {
	Provider  string
	Variables []string
}

func (e MissingCredentialError) Error() string {
	if len(e.Variables) == 0 {
		return fmt.Sprintf("%s credentials not configured", e.Provider)
	}
	return fmt.Sprintf("%s credentials not configured (missing %s)", e.Provider, strings.Join(e.Variables, ", "))
}

// ValidationError captures provider-specific precondition failures.
type ValidationError struct {
	Provider string
	Reason   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Provider, e.Reason)
}

// UpstreamError reports a non-2xx response from a platform API.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
