// Package response builds the JSON envelope every API endpoint returns.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request id middleware sets.
const RequestIDKey = "request_id"

type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

func envelope[T any](ctx *gin.Context, status, fallback int, message string) APIResponse[T] {
	if status == 0 {
		status = fallback
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString(RequestIDKey),
		Success:   status < http.StatusBadRequest,
		Message:   message,
	}
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	resp := envelope[T](ctx, status, http.StatusOK, message)
	resp.Data = data
	resp.Meta = meta
	return resp
}

func Error[T any](ctx *gin.Context, status int, message string, err any) APIResponse[T] {
	resp := envelope[T](ctx, status, http.StatusBadRequest, message)
	resp.Success = false
	resp.Error = err
	return resp
}

// Abort writes an error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err any) {
	resp := Error[any](ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}
