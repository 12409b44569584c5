package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/asset"
)

type AssetHandler struct {
	Svc *application.AssetService
	// MaxBytes caps the multipart request body.
	MaxBytes int64
	Logger   *logrus.Logger
}

func NewAssetHandler(svc *application.AssetService, maxBytes int64, logger *logrus.Logger) *AssetHandler {
	return &AssetHandler{Svc: svc, MaxBytes: maxBytes, Logger: logger}
}

type uploadURLRequest struct {
	Category  string         `json:"category" binding:"required"`
	Filename  string         `json:"filename" binding:"required"`
	MimeType  string         `json:"mime_type" binding:"required"`
	SizeBytes int64          `json:"size_bytes" binding:"required,min=1"`
	Metadata  map[string]any `json:"metadata"`
}

type ticketView struct {
	Asset     asset.Record `json:"asset"`
	UploadURL string       `json:"upload_url"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toTicketView(t *application.UploadTicket) ticketView {
	return ticketView{Asset: assetView(t.Asset), UploadURL: t.UploadURL, ExpiresAt: t.ExpiresAt}
}

type assetListQuery struct {
	pageQuery
	Status       string `form:"status"`
	Category     string `form:"category"`
	UploadedBy   string `form:"uploaded_by"`
	ModelID      string `form:"model_id"`
	GenerationID string `form:"generation_id"`
}

type markReadyRequest struct {
	CdnURL       string `json:"cdn_url" binding:"omitempty,url"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
}

type markFailedRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type metadataRequest struct {
	Metadata map[string]any `json:"metadata" binding:"required"`
}

// RequestUpload registers a pending asset and returns a signed PUT URL.
func (h *AssetHandler) RequestUpload(c *gin.Context) {
	var req uploadURLRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Svc.RequestUpload(c.Request.Context(), actorID(c), c.Param("storeId"), application.RequestUploadInput{
		Category:  req.Category,
		Filename:  req.Filename,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		Metadata:  req.Metadata,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusCreated, toTicketView(t), "upload url issued", nil)
}

// Upload accepts a multipart "file" part plus "category" and an optional
// JSON "metadata" field.
func (h *AssetHandler) Upload(c *gin.Context) {
	if h.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required", map[string]any{"error": err.Error()})
		return
	}
	var metadata map[string]any
	if raw := c.PostForm("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			badRequest(c, "metadata must be a JSON object", nil)
			return
		}
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	a, err := h.Svc.Upload(c.Request.Context(), actorID(c), c.Param("storeId"), application.RequestUploadInput{
		Category:  c.PostForm("category"),
		Filename:  fh.Filename,
		MimeType:  fh.Header.Get("Content-Type"),
		SizeBytes: fh.Size,
		Metadata:  metadata,
	}, f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusCreated, assetView(a), "asset uploaded", nil)
}

func (h *AssetHandler) List(c *gin.Context) {
	var q assetListQuery
	if !bindQuery(c, &q) {
		return
	}
	f := asset.Filter{
		QueryOptions: q.options(),
		UploadedBy:   q.UploadedBy,
		ModelID:      q.ModelID,
		GenerationID: q.GenerationID,
	}
	if q.Status != "" {
		st, err := asset.ParseStatus(q.Status)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		f.Status = st
	}
	if q.Category != "" {
		cat, err := asset.ParseCategory(q.Category)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		f.Category = cat
	}
	items, total, err := h.Svc.List(c.Request.Context(), actorID(c), c.Param("storeId"), f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, listView(items, assetView), "assets", meta(total, f.QueryOptions))
}

func (h *AssetHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), actorID(c), c.Param("assetId"))
	h.respond(c, a, err, "asset")
}

func (h *AssetHandler) ConfirmUpload(c *gin.Context) {
	a, err := h.Svc.ConfirmUpload(c.Request.Context(), actorID(c), c.Param("assetId"))
	h.respond(c, a, err, "upload confirmed")
}

func (h *AssetHandler) StartProcessing(c *gin.Context) {
	a, err := h.Svc.StartProcessing(c.Request.Context(), actorID(c), c.Param("assetId"))
	h.respond(c, a, err, "processing started")
}

func (h *AssetHandler) MarkReady(c *gin.Context) {
	var req markReadyRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.MarkReady(c.Request.Context(), actorID(c), c.Param("assetId"), req.CdnURL, req.ThumbnailURL)
	h.respond(c, a, err, "asset ready")
}

// SetDeliveryURLs repoints a READY asset; the body shape matches MarkReady.
func (h *AssetHandler) SetDeliveryURLs(c *gin.Context) {
	var req markReadyRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.SetDeliveryURLs(c.Request.Context(), actorID(c), c.Param("assetId"), req.CdnURL, req.ThumbnailURL)
	h.respond(c, a, err, "asset urls updated")
}

func (h *AssetHandler) MarkFailed(c *gin.Context) {
	var req markFailedRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.MarkFailed(c.Request.Context(), actorID(c), c.Param("assetId"), req.Reason)
	h.respond(c, a, err, "asset failed")
}

// Retry resets a failed asset and issues a fresh upload URL.
func (h *AssetHandler) Retry(c *gin.Context) {
	t, err := h.Svc.Retry(c.Request.Context(), actorID(c), c.Param("assetId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, toTicketView(t), "upload url issued", nil)
}

func (h *AssetHandler) UpdateMetadata(c *gin.Context) {
	var req metadataRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.UpdateMetadata(c.Request.Context(), actorID(c), c.Param("assetId"), req.Metadata)
	h.respond(c, a, err, "metadata updated")
}

func (h *AssetHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorID(c), c.Param("assetId")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssetHandler) Restore(c *gin.Context) {
	a, err := h.Svc.Restore(c.Request.Context(), actorID(c), c.Param("assetId"))
	h.respond(c, a, err, "asset restored")
}

func (h *AssetHandler) respond(c *gin.Context, a *asset.Asset, err error, message string) {
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, assetView(a), message, nil)
}
