package dto

import (
	"errors"
	"fmt"
)

// ExternalServiceError indicates the upstream completion call could not be
// completed: network failure, quota exhaustion, safety-filter rejection, or
// an empty/malformed response envelope. It is distinct from a response that
// arrived but could not be parsed; those are resolved into fallback results
// and never surfaced.
type ExternalServiceError struct {
	Operation string
	Symbol    string
	Err       error
}

func (e *ExternalServiceError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternalServiceError wraps err with the operation and symbol context.
func NewExternalServiceError(operation, symbol string, err error) *ExternalServiceError {
	return &ExternalServiceError{Operation: operation, Symbol: symbol, Err: err}
}

// IsExternalServiceError reports whether err carries an ExternalServiceError.
func IsExternalServiceError(err error) bool {
	var target *ExternalServiceError
	return errors.As(err, &target)
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
