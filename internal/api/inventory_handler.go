package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/models"
)

// InventoryHandler handles API endpoints related to the food inventory.
type InventoryHandler struct {
	inventoryService core.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is core.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// mapInventoryErrorToStatus maps errors from core.InventoryService to HTTP status codes.
func mapInventoryErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrItemNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrItemNotFound.Error()}
	case errors.Is(err, core.ErrInvalidLocation):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrInvalidLocation.Error(), Details: err.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// ListItems handles GET /inventory
func (h *InventoryHandler) ListItems(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	items, err := h.inventoryService.List(c.Request.Context(), userID.(string))
	if err != nil {
		mapInventoryErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem handles POST /inventory
func (h *InventoryHandler) AddItem(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.AddFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.inventoryService.Add(c.Request.Context(), userID.(string), req)
	if err != nil {
		mapInventoryErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /inventory/:itemId
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	itemID := c.Param("itemId")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Item ID is required"})
		return
	}

	var req models.AddFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), userID.(string), itemID, req)
	if err != nil {
		mapInventoryErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /inventory/:itemId
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	itemID := c.Param("itemId")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Item ID is required"})
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), userID.(string), itemID); err != nil {
		mapInventoryErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
