package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/pkg/response"
)

// apiError is the error body of every failed request.
type apiError struct {
	Context string         `json:"context,omitempty"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError renders err with the status its DomainError carries; anything
// else is logged and reported as 500 without leaking the message.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	if de, ok := shared.AsDomainError(err); ok {
		status := de.StatusCode
		if status == 0 {
			status = http.StatusBadRequest
		}
		response.Abort(c, status, de.Message, apiError{Context: de.Context, Code: de.Code, Details: de.Details})
		return
	}
	logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString(response.RequestIDKey),
		"path":       c.FullPath(),
	}).Error("request failed")
	response.Abort(c, http.StatusInternalServerError, "internal server error", apiError{Code: "INTERNAL_ERROR"})
}

func badRequest(c *gin.Context, message string, details any) {
	response.Abort(c, http.StatusBadRequest, message, details)
}

func ok[T any](c *gin.Context, status int, data T, message string, meta any) {
	resp := response.Success(c, status, data, message, meta)
	c.JSON(resp.Status, resp)
}
