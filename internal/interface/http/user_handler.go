package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/application"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=100"`
	Locale   *string `json:"locale" binding:"omitempty,min=2,max=5"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, userView(u), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), actorID(c), application.UpdateProfileInput{
		FullName: req.FullName,
		Locale:   req.Locale,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, userView(u), "profile updated", nil)
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.SetOwnStatus(c.Request.Context(), actorID(c), req.Status)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ok(c, http.StatusOK, userView(u), "status updated", nil)
}

// Delete soft-deletes the caller's own account.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
