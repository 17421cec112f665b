package llm

import "fmt"

// APIError reports a failed call to a model provider: transport, auth,
// quota or an empty response.
type APIError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
