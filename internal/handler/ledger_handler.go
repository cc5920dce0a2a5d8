package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"lokma/internal/repository"
	"lokma/internal/service"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledger *service.LedgerQueryService
}

func NewLedgerHandler(ledger *service.LedgerQueryService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

func (h *LedgerHandler) Commissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.ledger.Commissions(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": list})
}

// Usage reports order count and commission total for ?period=YYYY-MM, defaulting to the current month.
func (h *LedgerHandler) Usage(c *gin.Context) {
	period := c.DefaultQuery("period", time.Now().UTC().Format("2006-01"))
	if _, err := time.Parse("2006-01", period); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be YYYY-MM"})
		return
	}
	usage, business, err := h.ledger.Usage(c.Request.Context(), c.Param("id"), period)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":           period,
		"order_count":      usage.OrderCount,
		"commission_total": usage.CommissionTotal.StringFixed(2),
		"account_balance":  business.AccountBalance.StringFixed(2),
	})
}
