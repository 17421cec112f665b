package parsing

import "fmt"

// InputError represents a missing or empty input detected before any model call
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// APICallError represents a failure of the model service itself
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

// ParseError represents a model response that is not parseable JSON
// even after brace extraction. Raw holds the response for diagnostics.
type ParseError struct {
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid JSON from model: %s", e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
