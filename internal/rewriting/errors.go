package rewriting

import (
	"fmt"
	"strings"
)

// APICallError represents an error from the Gemini API
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ShapeError represents a response that was absent, malformed JSON, or
// JSON of the wrong shape. Nothing is applied to the record when one of
// these is returned.
type ShapeError struct {
	Message string
	Cause   error
}

func (e *ShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unexpected response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unexpected response: %s", e.Message)
}

func (e *ShapeError) Unwrap() error {
	return e.Cause
}

// User-facing messages surfaced inline next to the triggering control.
const (
	msgInvalidKey     = "Invalid API Key. Please check your configuration."
	msgGenericFailure = "Failed to get a response from the AI. Please try again."
)

// IsCredentialError reports whether the underlying error text indicates
// an authentication problem rather than a generic failure.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	for _, marker := range []string{"api key not valid", "api_key_invalid", "invalid api key", "api key is required"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// UserMessage maps an internal rewrite error to the message shown to the
// user. Credential problems get a distinct message so a misconfigured
// key is not mistaken for a flaky service.
func UserMessage(err error) string {
	if IsCredentialError(err) {
		return msgInvalidKey
	}
	return msgGenericFailure
}
