package handler

import (
	"errors"
	"net/http"

	"lokma/internal/middleware"
	"lokma/internal/repository"
	"lokma/internal/service"

	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staff *service.StaffService
}

func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// RegisterFCMToken saves a device token for push notifications.
func (h *StaffHandler) RegisterFCMToken(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	err := h.staff.RegisterToken(c.Request.Context(), middleware.GetStaffID(c), req.Token, req.Platform)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StaffHandler) UpdateShift(c *gin.Context) {
	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action required"})
		return
	}
	m, err := h.staff.UpdateShift(c.Request.Context(), middleware.GetStaffID(c), req.Action)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	case errors.Is(err, service.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrNotOnShift), errors.Is(err, service.ErrNotPaused):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"is_on_shift":      m.IsOnShift,
		"shift_status":     m.ShiftStatus,
		"shift_started_at": m.ShiftStartedAt,
	})
}
