package handler

import (
	"errors"
	"net/http"

	"lokma/internal/domain"
	"lokma/internal/middleware"
	"lokma/internal/models"
	"lokma/internal/repository"
	"lokma/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus applies a staff or courier status change.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status      string `json:"status" binding:"required"`
		Reason      string `json:"reason"`
		CourierID   string `json:"courierId"`
		CourierName string `json:"courierName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	if _, err := domain.ParseOrderStatus(req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := h.loadOwned(c); !ok {
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), service.StatusUpdate{
		Status:      req.Status,
		Reason:      req.Reason,
		CourierID:   req.CourierID,
		CourierName: req.CourierName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// loadOwned writes the error response itself when the order is missing or belongs to another business.
func (h *OrderHandler) loadOwned(c *gin.Context) (*models.Order, bool) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return nil, false
	}
	if middleware.GetRole(c) != domain.RoleAdmin && order.BusinessID != middleware.GetBusinessID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return order, true
}
