package errors

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInvoice    = errors.New("invalid rgb invoice")
	ErrInvalidAddress    = errors.New("invalid bitcoin address")
	ErrUnrecognizedInput = errors.New("unrecognized input")

	// ErrDescriptorConsumed signals an RGB invoice that already reached a
	// terminal outcome on some request, for any user.
	ErrDescriptorConsumed = errors.New("rgb invoice already used")
)

// Errors reported by the RGB Lightning Node API. The node reports failures
// as free-form strings; the client maps the known ones onto this closed set.
var (
	ErrAllocationsAlreadyAvailable = errors.New("allocations already available")
	ErrInvalidTransportEndpoints   = errors.New("invalid transport endpoints")
	ErrRecipientAlreadyUsed        = errors.New("recipient id already used")
	ErrNodeUnavailable             = errors.New("node unavailable")
)

// NodeError represents an unexpected error message returned by the node API.
type NodeError struct {
	Message string
	Err     error
}

func (e *NodeError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// NewNodeError creates a new node error from the raw node message
func NewNodeError(message string) *NodeError {
	return &NodeError{Message: message}
}

// RateLimitedError is returned when a user exhausted the daily allowance of
// successful requests. RetryAt is the raw retry timestamp; phrasing it for
// the user is a presentation concern of the chat layer.
type RateLimitedError struct {
	RetryAt time.Time
}

func (e *RateLimitedError) Error() string {
	return "too many successful requests in the past 24 hours"
}
