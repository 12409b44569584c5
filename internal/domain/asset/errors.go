package asset

import (
	"fmt"
	"net/http"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Context is the bounded-context name carried by every asset error.
const Context = "asset"

const (
	CodeNotFound                = "ASSET_NOT_FOUND"
	CodeAlreadyExists           = "ASSET_ALREADY_EXISTS"
	CodeValidation              = "ASSET_VALIDATION_ERROR"
	CodeInvalidStatus           = "ASSET_INVALID_STATUS"
	CodeInvalidTransition       = "ASSET_INVALID_TRANSITION"
	CodeBusinessRuleViolation   = "ASSET_BUSINESS_RULE_VIOLATION"
	CodeInsufficientPermissions = "ASSET_INSUFFICIENT_PERMISSIONS"
	CodeOperationNotAllowed     = "ASSET_OPERATION_NOT_ALLOWED"
	CodeFileTooLarge            = "ASSET_FILE_TOO_LARGE"
	CodeInvalidMimeType         = "ASSET_INVALID_MIME_TYPE"
	CodeUploadFailed            = "ASSET_UPLOAD_FAILED"
	CodeDownloadFailed          = "ASSET_DOWNLOAD_FAILED"
	CodeProcessingFailed        = "ASSET_PROCESSING_FAILED"
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
	CodeFileTooLarge:            http.StatusRequestEntityTooLarge,
	CodeInvalidMimeType:         http.StatusUnsupportedMediaType,
	CodeUploadFailed:            http.StatusInternalServerError,
	CodeDownloadFailed:          http.StatusInternalServerError,
	CodeProcessingFailed:        http.StatusInternalServerError,
}

var messages = map[string]string{
	CodeNotFound:                "Asset not found",
	CodeAlreadyExists:           "Asset already exists",
	CodeValidation:              "Asset data is invalid",
	CodeInvalidStatus:           "Asset is not in a valid status for this operation",
	CodeInvalidTransition:       "Asset status transition is not allowed",
	CodeBusinessRuleViolation:   "Asset business rule violated",
	CodeInsufficientPermissions: "Insufficient permissions for this asset",
	CodeOperationNotAllowed:     "Operation not allowed on this asset",
	CodeFileTooLarge:            "File is too large",
	CodeInvalidMimeType:         "File type is not supported",
	CodeUploadFailed:            "Asset upload failed",
	CodeDownloadFailed:          "Asset download failed",
	CodeProcessingFailed:        "Asset processing failed",
}

// Sentinels for errors.Is; constructors below attach details.
var (
	ErrNotFound                = newError(CodeNotFound, messages[CodeNotFound], nil)
	ErrAlreadyExists           = newError(CodeAlreadyExists, messages[CodeAlreadyExists], nil)
	ErrValidation              = newError(CodeValidation, messages[CodeValidation], nil)
	ErrInvalidStatus           = newError(CodeInvalidStatus, messages[CodeInvalidStatus], nil)
	ErrInvalidTransition       = newError(CodeInvalidTransition, messages[CodeInvalidTransition], nil)
	ErrBusinessRuleViolation   = newError(CodeBusinessRuleViolation, messages[CodeBusinessRuleViolation], nil)
	ErrInsufficientPermissions = newError(CodeInsufficientPermissions, messages[CodeInsufficientPermissions], nil)
	ErrOperationNotAllowed     = newError(CodeOperationNotAllowed, messages[CodeOperationNotAllowed], nil)
	ErrFileTooLarge            = newError(CodeFileTooLarge, messages[CodeFileTooLarge], nil)
	ErrInvalidMimeType         = newError(CodeInvalidMimeType, messages[CodeInvalidMimeType], nil)
	ErrUploadFailed            = newError(CodeUploadFailed, messages[CodeUploadFailed], nil)
	ErrDownloadFailed          = newError(CodeDownloadFailed, messages[CodeDownloadFailed], nil)
	ErrProcessingFailed        = newError(CodeProcessingFailed, messages[CodeProcessingFailed], nil)
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

// IsDomainError reports whether err was raised by the asset context.
func IsDomainError(err error) bool {
	return shared.IsContextError(err, Context)
}

// ErrorMessage returns the human-readable text for code.
func ErrorMessage(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Unknown asset error"
}

func NewNotFoundError(id string) *shared.DomainError {
	return newError(CodeNotFound, fmt.Sprintf("asset %s not found", id), map[string]any{"assetId": id})
}

func NewAlreadyExistsError(id string) *shared.DomainError {
	return newError(CodeAlreadyExists, fmt.Sprintf("asset %s already exists", id), map[string]any{"assetId": id})
}

func NewValidationError(field string, value any, violations []string) *shared.DomainError {
	return shared.NewValidationError(Context, CodeValidation, statusCodes[CodeValidation], field, value, violations)
}

func NewInvalidStatusError(current Status, operation string) *shared.DomainError {
	return newError(CodeInvalidStatus,
		fmt.Sprintf("cannot %s asset in status %s", operation, current),
		map[string]any{"status": string(current), "operation": operation})
}

func NewInvalidTransitionError(from, to Status) *shared.DomainError {
	return shared.NewTransitionError(Context, CodeInvalidTransition, statusCodes[CodeInvalidTransition], string(from), string(to))
}

func NewBusinessRuleViolationError(rule string) *shared.DomainError {
	return newError(CodeBusinessRuleViolation, "asset business rule violated: "+rule, map[string]any{"rule": rule})
}

func NewInsufficientPermissionsError(userID, assetID string) *shared.DomainError {
	return newError(CodeInsufficientPermissions,
		fmt.Sprintf("user %s may not access asset %s", userID, assetID),
		map[string]any{"userId": userID, "assetId": assetID})
}

func NewOperationNotAllowedError(operation, reason string) *shared.DomainError {
	return newError(CodeOperationNotAllowed,
		fmt.Sprintf("operation %s not allowed: %s", operation, reason),
		map[string]any{"operation": operation, "reason": reason})
}

func NewFileTooLargeError(size, max int64) *shared.DomainError {
	return newError(CodeFileTooLarge,
		fmt.Sprintf("file size %d exceeds the maximum of %d bytes", size, max),
		map[string]any{"sizeBytes": size, "maxSizeBytes": max})
}

func NewInvalidMimeTypeError(mimeType string) *shared.DomainError {
	return newError(CodeInvalidMimeType,
		fmt.Sprintf("mime type %s is not allowed", mimeType),
		map[string]any{"mimeType": mimeType, "allowed": AllowedMimeTypes()})
}

func NewUploadFailedError(assetID string, err error) *shared.DomainError {
	e := newError(CodeUploadFailed, fmt.Sprintf("upload of asset %s failed", assetID), map[string]any{"assetId": assetID})
	e.Err = err
	return e
}

func NewDownloadFailedError(assetID string, err error) *shared.DomainError {
	e := newError(CodeDownloadFailed, fmt.Sprintf("download of asset %s failed", assetID), map[string]any{"assetId": assetID})
	e.Err = err
	return e
}

func NewProcessingFailedError(assetID, reason string) *shared.DomainError {
	return newError(CodeProcessingFailed,
		fmt.Sprintf("processing of asset %s failed: %s", assetID, reason),
		map[string]any{"assetId": assetID, "reason": reason})
}
