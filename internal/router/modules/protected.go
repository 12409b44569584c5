package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-studio/internal/container"
	"github.com/oksasatya/fashion-studio/internal/interface/middleware"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

// protected returns a group that requires an access token and applies the
// per-user rate limit from config.
func protected(rg *gin.RouterGroup, jwt *helpers.JWTManager) *gin.RouterGroup {
	cfg := container.GetConfig()
	auth := rg.Group("/")
	auth.Use(middleware.Auth(jwt))
	auth.Use(middleware.RateLimit(container.GetRedis(), middleware.Rule{
		Name:   "user",
		Limit:  cfg.RateLimitRequests,
		Window: cfg.RateLimitWindow,
		Key:    middleware.KeyByUserID(),
	}))
	return auth
}
