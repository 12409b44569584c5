package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

type healthView struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	view := healthView{Status: "ok", Checks: make(map[string]string, len(h.Checks))}
	status := http.StatusOK
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			view.Checks[name] = err.Error()
			view.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		view.Checks[name] = "ok"
	}
	ok(c, status, view, view.Status, nil)
}
