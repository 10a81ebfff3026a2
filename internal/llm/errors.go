package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes for an outbound generation call.
var (
	// ErrTransport means the service could not be reached.
	ErrTransport = errors.New("llm transport failure")
	// ErrStatus means the service answered with a non-success status.
	ErrStatus = errors.New("llm non-success status")
	// ErrEnvelope means the response did not carry generated text where expected.
	ErrEnvelope = errors.New("llm malformed response envelope")
	// ErrFatalAPI marks failures that will not resolve without operator action
	// (bad credentials, exhausted quota or billing).
	ErrFatalAPI = errors.New("llm fatal API error")
)

// fatalMarkers are lowercase substrings identifying credential or quota failures.
var fatalMarkers = []string{
	"credit balance",
	"rate limit",
	"quota exceeded",
	"resource_exhausted",
	"billing",
	"invalid api key",
	"api key not valid",
	"authentication",
	"unauthorized",
	"permission_denied",
	"401",
	"403",
}

func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range fatalMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// wrapFatalError tags err with ErrFatalAPI when it looks like a credential or quota failure.
func wrapFatalError(err error) error {
	if !isFatalAPIError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrFatalAPI, err)
}

// IsFatal reports whether err was classified as a fatal API error.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatalAPI)
}
