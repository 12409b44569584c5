package model

import (
	"fmt"
	"net/http"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Context is the bounded-context name carried by every model error.
const Context = "model"

const (
	CodeNotFound                = "MODEL_NOT_FOUND"
	CodeAlreadyExists           = "MODEL_ALREADY_EXISTS"
	CodeValidation              = "MODEL_VALIDATION_ERROR"
	CodeInvalidStatus           = "MODEL_INVALID_STATUS"
	CodeInvalidTransition       = "MODEL_INVALID_TRANSITION"
	CodeBusinessRuleViolation   = "MODEL_BUSINESS_RULE_VIOLATION"
	CodeInsufficientPermissions = "MODEL_INSUFFICIENT_PERMISSIONS"
	CodeOperationNotAllowed     = "MODEL_OPERATION_NOT_ALLOWED"
	CodeRequiresInput           = "MODEL_REQUIRES_INPUT"
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
	CodeRequiresInput:           http.StatusBadRequest,
}

var messages = map[string]string{
	CodeNotFound:                "Model not found",
	CodeAlreadyExists:           "Model already exists",
	CodeValidation:              "Model data is invalid",
	CodeInvalidStatus:           "Model is not in a valid status for this operation",
	CodeInvalidTransition:       "Model status transition is not allowed",
	CodeBusinessRuleViolation:   "Model business rule violated",
	CodeInsufficientPermissions: "Insufficient permissions for this model",
	CodeOperationNotAllowed:     "Operation not allowed on this model",
	CodeRequiresInput:           "Model requires a prompt or reference images",
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
	ErrRequiresInput           = newError(CodeRequiresInput, messages[CodeRequiresInput], nil)
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
	return "Unknown model error"
}

func NewNotFoundError(id string) *shared.DomainError {
	return newError(CodeNotFound, fmt.Sprintf("model %s not found", id), map[string]any{"modelId": id})
}

func NewAlreadyExistsError(id string) *shared.DomainError {
	return newError(CodeAlreadyExists, fmt.Sprintf("model %s already exists", id), map[string]any{"modelId": id})
}

func NewValidationError(field string, value any, violations []string) *shared.DomainError {
	return shared.NewValidationError(Context, CodeValidation, statusCodes[CodeValidation], field, value, violations)
}

func NewInvalidStatusError(current Status, operation string) *shared.DomainError {
	return newError(CodeInvalidStatus,
		fmt.Sprintf("cannot %s model in status %s", operation, current),
		map[string]any{"status": string(current), "operation": operation})
}

func NewInvalidTransitionError(from, to Status) *shared.DomainError {
	return shared.NewTransitionError(Context, CodeInvalidTransition, statusCodes[CodeInvalidTransition], string(from), string(to))
}

func NewBusinessRuleViolationError(rule string) *shared.DomainError {
	return newError(CodeBusinessRuleViolation, "model business rule violated: "+rule, map[string]any{"rule": rule})
}

func NewInsufficientPermissionsError(userID, modelID string) *shared.DomainError {
	return newError(CodeInsufficientPermissions,
		fmt.Sprintf("user %s may not access model %s", userID, modelID),
		map[string]any{"userId": userID, "modelId": modelID})
}

func NewOperationNotAllowedError(operation, reason string) *shared.DomainError {
	return newError(CodeOperationNotAllowed,
		fmt.Sprintf("operation %s not allowed: %s", operation, reason),
		map[string]any{"operation": operation, "reason": reason})
}

// NewRequiresInputError reports a model created with neither a prompt nor
// reference images.
func NewRequiresInputError() *shared.DomainError {
	return newError(CodeRequiresInput,
		"model requires a prompt or at least one reference image",
		map[string]any{"fields": []string{"prompt", "referenceImageIds"}})
}
