package store

import (
	"fmt"
	"net/http"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Context is the bounded-context name carried by every store error.
const Context = "store"

const (
	CodeNotFound                = "STORE_NOT_FOUND"
	CodeAlreadyExists           = "STORE_ALREADY_EXISTS"
	CodeValidation              = "STORE_VALIDATION_ERROR"
	CodeInvalidStatus           = "STORE_INVALID_STATUS"
	CodeInvalidTransition       = "STORE_INVALID_TRANSITION"
	CodeBusinessRuleViolation   = "STORE_BUSINESS_RULE_VIOLATION"
	CodeInsufficientPermissions = "STORE_INSUFFICIENT_PERMISSIONS"
	CodeOperationNotAllowed     = "STORE_OPERATION_NOT_ALLOWED"
	CodeOwnerMismatch           = "STORE_OWNER_MISMATCH"
	CodeSuspended               = "STORE_SUSPENDED"
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
	CodeOwnerMismatch:           http.StatusForbidden,
	CodeSuspended:               http.StatusForbidden,
}

var messages = map[string]string{
	CodeNotFound:                "Store not found",
	CodeAlreadyExists:           "Store already exists",
	CodeValidation:              "Store data is invalid",
	CodeInvalidStatus:           "Store is not in a valid status for this operation",
	CodeInvalidTransition:       "Store status transition is not allowed",
	CodeBusinessRuleViolation:   "Store business rule violated",
	CodeInsufficientPermissions: "Insufficient permissions for this store",
	CodeOperationNotAllowed:     "Operation not allowed on this store",
	CodeOwnerMismatch:           "Store belongs to another owner",
	CodeSuspended:               "Store is suspended",
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
	ErrOwnerMismatch           = newError(CodeOwnerMismatch, messages[CodeOwnerMismatch], nil)
	ErrSuspended               = newError(CodeSuspended, messages[CodeSuspended], nil)
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
	return "Unknown store error"
}

func NewNotFoundError(id string) *shared.DomainError {
	return newError(CodeNotFound, fmt.Sprintf("store %s not found", id), map[string]any{"storeId": id})
}

func NewAlreadyExistsError(id string) *shared.DomainError {
	return newError(CodeAlreadyExists, fmt.Sprintf("store %s already exists", id), map[string]any{"storeId": id})
}

func NewValidationError(field string, value any, violations []string) *shared.DomainError {
	return shared.NewValidationError(Context, CodeValidation, statusCodes[CodeValidation], field, value, violations)
}

func NewInvalidStatusError(current Status, operation string) *shared.DomainError {
	return newError(CodeInvalidStatus,
		fmt.Sprintf("cannot %s store in status %s", operation, current),
		map[string]any{"status": string(current), "operation": operation})
}

func NewInvalidTransitionError(from, to Status) *shared.DomainError {
	return shared.NewTransitionError(Context, CodeInvalidTransition, statusCodes[CodeInvalidTransition], string(from), string(to))
}

func NewBusinessRuleViolationError(rule string) *shared.DomainError {
	return newError(CodeBusinessRuleViolation, "store business rule violated: "+rule, map[string]any{"rule": rule})
}

func NewInsufficientPermissionsError(userID, storeID string) *shared.DomainError {
	return newError(CodeInsufficientPermissions,
		fmt.Sprintf("user %s may not access store %s", userID, storeID),
		map[string]any{"userId": userID, "storeId": storeID})
}

func NewOperationNotAllowedError(operation, reason string) *shared.DomainError {
	return newError(CodeOperationNotAllowed,
		fmt.Sprintf("operation %s not allowed: %s", operation, reason),
		map[string]any{"operation": operation, "reason": reason})
}

func NewOwnerMismatchError(storeID, userID string) *shared.DomainError {
	return newError(CodeOwnerMismatch,
		fmt.Sprintf("store %s is not owned by user %s", storeID, userID),
		map[string]any{"storeId": storeID, "userId": userID})
}

func NewSuspendedError(storeID string) *shared.DomainError {
	return newError(CodeSuspended, fmt.Sprintf("store %s is suspended", storeID), map[string]any{"storeId": storeID})
}
