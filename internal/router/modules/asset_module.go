package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

type AssetModule struct {
	Handler *handlers.AssetHandler
	JWT     *helpers.JWTManager
}

func NewAssetModule(h *handlers.AssetHandler, jwt *helpers.JWTManager) *AssetModule {
	return &AssetModule{Handler: h, JWT: jwt}
}

func (m *AssetModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT)
	{
		auth.POST("/stores/:storeId/assets/upload-url", m.Handler.RequestUpload)
		auth.POST("/stores/:storeId/assets", m.Handler.Upload)
		auth.GET("/stores/:storeId/assets", m.Handler.List)

		auth.GET("/assets/:assetId", m.Handler.Get)
		auth.DELETE("/assets/:assetId", m.Handler.Delete)
		auth.POST("/assets/:assetId/confirm", m.Handler.ConfirmUpload)
		auth.POST("/assets/:assetId/processing", m.Handler.StartProcessing)
		auth.POST("/assets/:assetId/ready", m.Handler.MarkReady)
		auth.POST("/assets/:assetId/fail", m.Handler.MarkFailed)
		auth.POST("/assets/:assetId/retry", m.Handler.Retry)
		auth.POST("/assets/:assetId/restore", m.Handler.Restore)
		auth.PATCH("/assets/:assetId/metadata", m.Handler.UpdateMetadata)
		auth.PUT("/assets/:assetId/urls", m.Handler.SetDeliveryURLs)
	}
}
