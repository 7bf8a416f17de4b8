package leads

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequired is wrapped by ValidationError
	ErrMissingRequired = errors.New("first name, email, and company are required")

	// ErrNotEditing is returned when the form already reached a terminal state
	ErrNotEditing = errors.New("lead form is no longer editable")

	// ErrAlreadySubmitted is returned for a second submit while one is in flight
	ErrAlreadySubmitted = errors.New("lead form submission already in progress")

	ErrUnknownField    = errors.New("unknown lead field")
	ErrReadOnlyField   = errors.New("lead field cannot be edited")
	ErrUnknownInterest = errors.New("unknown interest tag")
	ErrInvalidSites    = errors.New("unknown sites bracket")
)

// User-facing copy for the acknowledgment card.
const (
	AcknowledgeMessage = "Thanks—you're on our list."
	ValidationWarning  = "Please fill in first name, email, and company."
	FallbackWarning    = "Something went wrong. We saved your info locally."
)

// ValidationError lists required fields that were blank at submit time.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("leads: missing required fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingRequired
}

// TransportError reports a failed webhook call: either a network error or a
// non-2xx status.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("leads: webhook request failed: %v", e.Err)
	}
	return fmt.Sprintf("leads: webhook returned status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// warningFor maps a fallback cause onto the copy shown next to the acknowledgment.
func warningFor(cause error) string {
	var verr *ValidationError
	if errors.As(cause, &verr) {
		return ValidationWarning
	}
	return FallbackWarning
}

// fallbackReason labels a fallback cause for metrics and logs.
func fallbackReason(cause error) string {
	var verr *ValidationError
	if errors.As(cause, &verr) {
		return "validation"
	}
	return "transport"
}
