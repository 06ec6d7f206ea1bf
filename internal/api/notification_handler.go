package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/core"
)

// NotificationHandler handles API endpoints for expiry alerts.
type NotificationHandler struct {
	notifier core.ExpiryNotifier
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(n core.ExpiryNotifier) *NotificationHandler {
	return &NotificationHandler{notifier: n}
}

// ExpiryCheck handles POST /notifications/expiry-check
// Clients trigger this from their periodic background task.
func (h *NotificationHandler) ExpiryCheck(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	sent, err := h.notifier.CheckAndNotify(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, ExpiryCheckResponse{Sent: sent})
}
