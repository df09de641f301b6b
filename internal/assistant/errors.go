package assistant

import (
	"errors"
	"fmt"
)

// ErrGateway matches every failure reported by the assistant gateway.
var ErrGateway = errors.New("assistant gateway failure")

// ErrNotConfigured is the cause when no API key is available.
var ErrNotConfigured = errors.New("assistant provider is not configured")

// Error describes a failed gateway operation.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assistant %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("assistant %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports every *Error as ErrGateway.
func (e *Error) Is(target error) bool { return target == ErrGateway }

func newError(op, msg string, cause error) *Error {
	return &Error{Op: op, Message: msg, Cause: cause}
}
