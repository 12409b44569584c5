package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fashion-studio/internal/interface/http"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

// ModelModule wires AI model routes. Collection routes hang off a store,
// item routes are addressed by model id.
type ModelModule struct {
	Handler *handlers.ModelHandler
	JWT     *helpers.JWTManager
}

func NewModelModule(h *handlers.ModelHandler, jwt *helpers.JWTManager) *ModelModule {
	return &ModelModule{Handler: h, JWT: jwt}
}

func (m *ModelModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT)
	{
		auth.POST("/stores/:storeId/models", m.Handler.Create)
		auth.GET("/stores/:storeId/models", m.Handler.List)
		auth.GET("/stores/:storeId/models/search", m.Handler.Search)

		auth.GET("/models/:modelId", m.Handler.Get)
		auth.PATCH("/models/:modelId", m.Handler.Update)
		auth.DELETE("/models/:modelId", m.Handler.Delete)
		auth.POST("/models/:modelId/calibration/start", m.Handler.StartCalibration)
		auth.POST("/models/:modelId/calibration/images", m.Handler.AddCalibrationImage)
		auth.POST("/models/:modelId/calibration/approve", m.Handler.ApproveCalibration)
		auth.POST("/models/:modelId/calibration/reject", m.Handler.RejectCalibration)
		auth.POST("/models/:modelId/calibration/retry", m.Handler.RetryCalibration)
		auth.POST("/models/:modelId/archive", m.Handler.Archive)
		auth.POST("/models/:modelId/restore", m.Handler.Restore)
	}
}
