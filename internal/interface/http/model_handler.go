package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
)

type ModelHandler struct {
	Svc    *application.ModelService
	Logger *logrus.Logger
}

func NewModelHandler(svc *application.ModelService, logger *logrus.Logger) *ModelHandler {
	return &ModelHandler{Svc: svc, Logger: logger}
}

type createModelRequest struct {
	Name                  string                `json:"name" binding:"required"`
	Description           string                `json:"description"`
	Gender                string                `json:"gender" binding:"required"`
	AgeRange              string                `json:"age_range" binding:"required"`
	Ethnicity             string                `json:"ethnicity" binding:"required"`
	BodyType              string                `json:"body_type" binding:"required"`
	Prompt                string                `json:"prompt"`
	ReferenceImageIDs     []string              `json:"reference_image_ids"`
	LightingPreset        string                `json:"lighting_preset"`
	CustomLighting        *model.CustomLighting `json:"custom_lighting"`
	CameraPreset          string                `json:"camera_preset"`
	CustomCamera          *model.CustomCamera   `json:"custom_camera"`
	TexturePreferences    []string              `json:"texture_preferences"`
	ProductCategories     []string              `json:"product_categories"`
	SupportOutfitSwapping *bool                 `json:"support_outfit_swapping"`
}

type updateModelRequest struct {
	Name                  *string               `json:"name"`
	Description           *string               `json:"description"`
	Gender                *string               `json:"gender"`
	AgeRange              *string               `json:"age_range"`
	Ethnicity             *string               `json:"ethnicity"`
	BodyType              *string               `json:"body_type"`
	Prompt                *string               `json:"prompt"`
	ReferenceImageIDs     *[]string             `json:"reference_image_ids"`
	LightingPreset        *string               `json:"lighting_preset"`
	CustomLighting        *model.CustomLighting `json:"custom_lighting"`
	CameraPreset          *string               `json:"camera_preset"`
	CustomCamera          *model.CustomCamera   `json:"custom_camera"`
	TexturePreferences    *[]string             `json:"texture_preferences"`
	ProductCategories     *[]string             `json:"product_categories"`
	SupportOutfitSwapping *bool                 `json:"support_outfit_swapping"`
}

type modelListQuery struct {
	pageQuery
	Status string `form:"status"`
	Gender string `form:"gender"`
}

type calibrationImageRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
}

type approveRequest struct {
	LockedIdentityURL string `json:"locked_identity_url" binding:"required,url"`
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func (h *ModelHandler) Create(c *gin.Context) {
	var req createModelRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), actorID(c), c.Param("storeId"), model.NewInput{
		Name:                  req.Name,
		Description:           req.Description,
		Gender:                req.Gender,
		AgeRange:              req.AgeRange,
		Ethnicity:             req.Ethnicity,
		BodyType:              req.BodyType,
		Prompt:                req.Prompt,
		ReferenceImageIDs:     req.ReferenceImageIDs,
		LightingPreset:        req.LightingPreset,
		CustomLighting:        req.CustomLighting,
		CameraPreset:          req.CameraPreset,
		CustomCamera:          req.CustomCamera,
		TexturePreferences:    req.TexturePreferences,
		ProductCategories:     req.ProductCategories,
		SupportOutfitSwapping: req.SupportOutfitSwapping,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusCreated, modelView(m), "model created", nil)
}

func (h *ModelHandler) List(c *gin.Context) {
	var q modelListQuery
	if !bindQuery(c, &q) {
		return
	}
	f := model.Filter{QueryOptions: q.options()}
	if q.Status != "" {
		st, err := model.ParseStatus(q.Status)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		f.Status = st
	}
	if q.Gender != "" {
		g, err := model.ParseGender(q.Gender)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		f.Gender = g
	}
	items, total, err := h.Svc.List(c.Request.Context(), actorID(c), c.Param("storeId"), f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, listView(items, modelView), "models", meta(total, f.QueryOptions))
}

// Search runs a full-text query over the store's models.
func (h *ModelHandler) Search(c *gin.Context) {
	hits, err := h.Svc.Search(c.Request.Context(), actorID(c), c.Param("storeId"), c.Query("q"), queryInt(c, "size", 20))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, hits, "models", nil)
}

func (h *ModelHandler) Get(c *gin.Context) {
	m, err := h.Svc.Get(c.Request.Context(), actorID(c), c.Param("modelId"))
	h.respond(c, m, err, "model")
}

func (h *ModelHandler) Update(c *gin.Context) {
	var req updateModelRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.Update(c.Request.Context(), actorID(c), c.Param("modelId"), model.UpdateInput{
		Name:                  req.Name,
		Description:           req.Description,
		Gender:                req.Gender,
		AgeRange:              req.AgeRange,
		Ethnicity:             req.Ethnicity,
		BodyType:              req.BodyType,
		Prompt:                req.Prompt,
		ReferenceImageIDs:     req.ReferenceImageIDs,
		LightingPreset:        req.LightingPreset,
		CustomLighting:        req.CustomLighting,
		CameraPreset:          req.CameraPreset,
		CustomCamera:          req.CustomCamera,
		TexturePreferences:    req.TexturePreferences,
		ProductCategories:     req.ProductCategories,
		SupportOutfitSwapping: req.SupportOutfitSwapping,
	})
	h.respond(c, m, err, "model updated")
}

func (h *ModelHandler) StartCalibration(c *gin.Context) {
	m, err := h.Svc.StartCalibration(c.Request.Context(), actorID(c), c.Param("modelId"))
	h.respond(c, m, err, "calibration started")
}

func (h *ModelHandler) AddCalibrationImage(c *gin.Context) {
	var req calibrationImageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.AddCalibrationImage(c.Request.Context(), actorID(c), c.Param("modelId"), req.AssetID)
	h.respond(c, m, err, "calibration image added")
}

func (h *ModelHandler) ApproveCalibration(c *gin.Context) {
	var req approveRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.ApproveCalibration(c.Request.Context(), actorID(c), c.Param("modelId"), req.LockedIdentityURL)
	h.respond(c, m, err, "calibration approved")
}

func (h *ModelHandler) RejectCalibration(c *gin.Context) {
	var req rejectRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.RejectCalibration(c.Request.Context(), actorID(c), c.Param("modelId"), req.Reason)
	h.respond(c, m, err, "calibration rejected")
}

func (h *ModelHandler) RetryCalibration(c *gin.Context) {
	m, err := h.Svc.RetryCalibration(c.Request.Context(), actorID(c), c.Param("modelId"))
	h.respond(c, m, err, "calibration reset")
}

func (h *ModelHandler) Archive(c *gin.Context) {
	m, err := h.Svc.Archive(c.Request.Context(), actorID(c), c.Param("modelId"))
	h.respond(c, m, err, "model archived")
}

func (h *ModelHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorID(c), c.Param("modelId")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ModelHandler) Restore(c *gin.Context) {
	m, err := h.Svc.Restore(c.Request.Context(), actorID(c), c.Param("modelId"))
	h.respond(c, m, err, "model restored")
}

func (h *ModelHandler) respond(c *gin.Context, m *model.Model, err error, message string) {
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, modelView(m), message, nil)
}
