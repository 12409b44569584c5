package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

type StoreHandler struct {
	Svc    *application.StoreService
	Logger *logrus.Logger
}

func NewStoreHandler(svc *application.StoreService, logger *logrus.Logger) *StoreHandler {
	return &StoreHandler{Svc: svc, Logger: logger}
}

type settingsRequest struct {
	DefaultAspectRatio *string `json:"default_aspect_ratio"`
	DefaultImageCount  *int    `json:"default_image_count"`
	WatermarkEnabled   *bool   `json:"watermark_enabled"`
}

func (r *settingsRequest) patch() *store.SettingsPatch {
	if r == nil {
		return nil
	}
	return &store.SettingsPatch{
		DefaultAspectRatio: r.DefaultAspectRatio,
		DefaultImageCount:  r.DefaultImageCount,
		WatermarkEnabled:   r.WatermarkEnabled,
	}
}

type createStoreRequest struct {
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	DefaultStyle string           `json:"default_style"`
	Settings     *settingsRequest `json:"settings"`
}

type updateStoreRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DefaultStyle *string `json:"default_style"`
}

type setLogoRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
}

type changeStoreStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (h *StoreHandler) Create(c *gin.Context) {
	var req createStoreRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Create(c.Request.Context(), actorID(c), application.CreateStoreInput{
		Name:         req.Name,
		Description:  req.Description,
		DefaultStyle: req.DefaultStyle,
		Settings:     req.Settings.patch(),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusCreated, storeView(s), "store created", nil)
}

func (h *StoreHandler) List(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	opts := q.options()
	items, total, err := h.Svc.List(c.Request.Context(), actorID(c), opts)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, listView(items, storeView), "stores", meta(total, opts))
}

func (h *StoreHandler) Get(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context(), actorID(c), c.Param("storeId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, storeView(s), "store", nil)
}

func (h *StoreHandler) Update(c *gin.Context) {
	var req updateStoreRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Update(c.Request.Context(), actorID(c), c.Param("storeId"), store.UpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		DefaultStyle: req.DefaultStyle,
	})
	h.respond(c, s, err, "store updated")
}

func (h *StoreHandler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.UpdateSettings(c.Request.Context(), actorID(c), c.Param("storeId"), *req.patch())
	h.respond(c, s, err, "settings updated")
}

func (h *StoreHandler) SetLogo(c *gin.Context) {
	var req setLogoRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.SetLogo(c.Request.Context(), actorID(c), c.Param("storeId"), req.AssetID)
	h.respond(c, s, err, "logo updated")
}

func (h *StoreHandler) RemoveLogo(c *gin.Context) {
	s, err := h.Svc.RemoveLogo(c.Request.Context(), actorID(c), c.Param("storeId"))
	h.respond(c, s, err, "logo removed")
}

func (h *StoreHandler) ChangeStatus(c *gin.Context) {
	var req changeStoreStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.ChangeStatus(c.Request.Context(), actorID(c), c.Param("storeId"), req.Status, req.Reason)
	h.respond(c, s, err, "status updated")
}

func (h *StoreHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorID(c), c.Param("storeId")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) Restore(c *gin.Context) {
	s, err := h.Svc.Restore(c.Request.Context(), actorID(c), c.Param("storeId"))
	h.respond(c, s, err, "store restored")
}

func (h *StoreHandler) respond(c *gin.Context, s *store.Store, err error, message string) {
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, storeView(s), message, nil)
}
