package handler

import (
	"errors"
	"io"
	"net/http"

	"lokma/internal/domain"
	"lokma/internal/event"
	"lokma/internal/mq"

	"github.com/gin-gonic/gin"
)

// EventHandler accepts order changes over HTTP for deployments without Kafka.
type EventHandler struct {
	handler mq.OrderUpdateHandler
}

func NewEventHandler(handler mq.OrderUpdateHandler) *EventHandler {
	return &EventHandler{handler: handler}
}

func (h *EventHandler) OrderEvent(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	change, err := event.DecodeChange(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err = h.handler.HandleOrderUpdate(c.Request.Context(), change)
	if errors.Is(err, domain.ErrUnknownStatus) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
