package shared

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError is the base of every bounded context's error taxonomy.
// Context names the bounded context, Code is the stable machine string and
// StatusCode the HTTP-style status callers may surface.
type DomainError struct {
	Context    string
	Code       string
	StatusCode int
	Message    string
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any DomainError of the same context and code, so per-context
// sentinels work with errors.Is regardless of message or details.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.Context == e.Context && t.Code == e.Code
}

// AsDomainError extracts the DomainError in err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsContextError reports whether err carries a DomainError raised by context.
func IsContextError(err error, context string) bool {
	de, ok := AsDomainError(err)
	return ok && de.Context == context
}

// NewValidationError aggregates every violated rule for field into one error.
func NewValidationError(context, code string, status int, field string, value any, violations []string) *DomainError {
	return &DomainError{
		Context:    context,
		Code:       code,
		StatusCode: status,
		Message:    fmt.Sprintf("invalid %s: %s", field, strings.Join(violations, "; ")),
		Details: map[string]any{
			"field":            field,
			"value":            value,
			"validationErrors": violations,
		},
	}
}

// NewTransitionError reports an illegal status change naming both states.
func NewTransitionError(context, code string, status int, from, to string) *DomainError {
	return &DomainError{
		Context:    context,
		Code:       code,
		StatusCode: status,
		Message:    fmt.Sprintf("invalid status transition from %s to %s", from, to),
		Details:    map[string]any{"from": from, "to": to},
	}
}
