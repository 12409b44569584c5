package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

// UserModule serves the caller's own profile under /me.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT)
	{
		auth.GET("/me", m.Handler.GetProfile)
		auth.PUT("/me", m.Handler.UpdateProfile)
		auth.PUT("/me/status", m.Handler.SetStatus)
		auth.DELETE("/me", m.Handler.Delete)
	}
}
