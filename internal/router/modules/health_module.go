package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-studio/internal/container"
	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/internal/interface/middleware"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	// load balancer checks from private ranges are never limited
	rl := middleware.RateLimit(container.GetRedis(), middleware.Rule{
		Name:   "health",
		Limit:  60,
		Window: time.Minute,
		Key:    middleware.KeyByIPAndPath(),
		Skip:   middleware.AllowPrivateIP(),
	})
	rg.GET("/health", rl, m.Handler.Health)
}
