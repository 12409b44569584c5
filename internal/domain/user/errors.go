package user

import (
	"fmt"
	"net/http"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Context is the bounded-context name carried by every user error.
const Context = "user"

const (
	CodeNotFound                = "USER_NOT_FOUND"
	CodeAlreadyExists           = "USER_ALREADY_EXISTS"
	CodeValidation              = "USER_VALIDATION_ERROR"
	CodeInvalidStatus           = "USER_INVALID_STATUS"
	CodeInvalidTransition       = "USER_INVALID_TRANSITION"
	CodeBusinessRuleViolation   = "USER_BUSINESS_RULE_VIOLATION"
	CodeInsufficientPermissions = "USER_INSUFFICIENT_PERMISSIONS"
	CodeOperationNotAllowed     = "USER_OPERATION_NOT_ALLOWED"
)

var statusCodes = map[string]int{
	CodeNotFound:                http.StatusNotFound,
	CodeAlreadyExists:           http.StatusConflict,
	CodeValidation:              http.StatusBadRequest,
	CodeInvalidStatus:           http.StatusConflict,
	CodeInvalidTransition:       http.StatusConflict,
	CodeBusinessRuleViolation:   http.StatusUnprocessableEntity,
	CodeInsufficientPermissions: http.StatusForbidden,
	CodeOperationNotAllowed:     http.StatusForbidden,
}

var messages = map[string]string{
	CodeNotFound:                "User not found",
	CodeAlreadyExists:           "User already exists",
	CodeValidation:              "User data is invalid",
	CodeInvalidStatus:           "User is not in a valid status for this operation",
	CodeInvalidTransition:       "User status transition is not allowed",
	CodeBusinessRuleViolation:   "User business rule violated",
	CodeInsufficientPermissions: "Insufficient permissions for this user",
	CodeOperationNotAllowed:     "Operation not allowed on this user",
}

var (
	ErrNotFound                = newError(CodeNotFound, messages[CodeNotFound], nil)
	ErrAlreadyExists           = newError(CodeAlreadyExists, messages[CodeAlreadyExists], nil)
	ErrValidation              = newError(CodeValidation, messages[CodeValidation], nil)
	ErrInvalidStatus           = newError(CodeInvalidStatus, messages[CodeInvalidStatus], nil)
	ErrInvalidTransition       = newError(CodeInvalidTransition, messages[CodeInvalidTransition], nil)
	ErrBusinessRuleViolation   = newError(CodeBusinessRuleViolation, messages[CodeBusinessRuleViolation], nil)
	ErrInsufficientPermissions = newError(CodeInsufficientPermissions, messages[CodeInsufficientPermissions], nil)
	ErrOperationNotAllowed     = newError(CodeOperationNotAllowed, messages[CodeOperationNotAllowed], nil)
)

func newError(code, message string, details map[string]any) *shared.DomainError {
	return &shared.DomainError{
		Context:    Context,
		Code:       code,
		StatusCode: statusCodes[code],
		Message:    message,
		Details:    details,
	}
}

func IsDomainError(err error) bool {
	return shared.IsContextError(err, Context)
}

func ErrorMessage(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Unknown user error"
}

func NewNotFoundError(id string) *shared.DomainError {
	return newError(CodeNotFound, fmt.Sprintf("user %s not found", id), map[string]any{"userId": id})
}

func NewAlreadyExistsError(id string) *shared.DomainError {
	return newError(CodeAlreadyExists, fmt.Sprintf("user %s already exists", id), map[string]any{"userId": id})
}

func NewValidationError(field string, value any, violations []string) *shared.DomainError {
	return shared.NewValidationError(Context, CodeValidation, statusCodes[CodeValidation], field, value, violations)
}

func NewInvalidStatusError(current Status, operation string) *shared.DomainError {
	return newError(CodeInvalidStatus,
		fmt.Sprintf("cannot %s user in status %s", operation, current),
		map[string]any{"status": string(current), "operation": operation})
}

func NewInvalidTransitionError(from, to Status) *shared.DomainError {
	return shared.NewTransitionError(Context, CodeInvalidTransition, statusCodes[CodeInvalidTransition], string(from), string(to))
}

func NewBusinessRuleViolationError(rule string) *shared.DomainError {
	return newError(CodeBusinessRuleViolation, "user business rule violated: "+rule, map[string]any{"rule": rule})
}

func NewInsufficientPermissionsError(actorID, userID string) *shared.DomainError {
	return newError(CodeInsufficientPermissions,
		fmt.Sprintf("user %s may not act on user %s", actorID, userID),
		map[string]any{"actorId": actorID, "userId": userID})
}

func NewOperationNotAllowedError(operation, reason string) *shared.DomainError {
	return newError(CodeOperationNotAllowed,
		fmt.Sprintf("operation %s not allowed: %s", operation, reason),
		map[string]any{"operation": operation, "reason": reason})
}
