// Package errors defines structured error types shared across the module.
//
// Two categories exist: NetworkError for failures talking to the network
// (socket creation, send, receive, interface lookup) and ValidationError
// for input that violates a protocol or configuration constraint.
package errors

import "fmt"

// NetworkError describes a failed network operation.
//
// Operation names the action that failed ("send response", "join group"),
// Err carries the underlying cause for errors.Is/As chains, and Details
// adds context useful in logs (addresses, sizes, interface names).
type NetworkError struct {
	Operation string
	Err       error
	Details   string
}

func (e *NetworkError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Operation, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError describes input that violates a protocol or
// configuration constraint.
//
// Field names the offending field ("hostname", "flags", "qdcount"),
// Value is its offending value rendered as a string, and Message states
// the violated constraint.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}
