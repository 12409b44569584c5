package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

type StoreModule struct {
	Handler *handlers.StoreHandler
	JWT     *helpers.JWTManager
}

func NewStoreModule(h *handlers.StoreHandler, jwt *helpers.JWTManager) *StoreModule {
	return &StoreModule{Handler: h, JWT: jwt}
}

func (m *StoreModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT)
	{
		auth.POST("/stores", m.Handler.Create)
		auth.GET("/stores", m.Handler.List)
		auth.GET("/stores/:storeId", m.Handler.Get)
		auth.PATCH("/stores/:storeId", m.Handler.Update)
		auth.DELETE("/stores/:storeId", m.Handler.Delete)
		auth.PUT("/stores/:storeId/settings", m.Handler.UpdateSettings)
		auth.PUT("/stores/:storeId/logo", m.Handler.SetLogo)
		auth.DELETE("/stores/:storeId/logo", m.Handler.RemoveLogo)
		auth.PUT("/stores/:storeId/status", m.Handler.ChangeStatus)
		auth.POST("/stores/:storeId/restore", m.Handler.Restore)
	}
}
