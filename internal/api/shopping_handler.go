package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/models"
)

// ShoppingHandler handles API endpoints related to the shopping list.
type ShoppingHandler struct {
	shoppingService core.ShoppingListService
}

// NewShoppingHandler creates a new ShoppingHandler.
func NewShoppingHandler(ss core.ShoppingListService) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: ss}
}

// mapShoppingErrorToStatus maps errors from core.ShoppingListService to HTTP status codes.
func mapShoppingErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrShoppingItemNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrShoppingItemNotFound.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// ListItems handles GET /shopping-list
func (h *ShoppingHandler) ListItems(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	items, err := h.shoppingService.List(c.Request.Context(), userID.(string))
	if err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem handles POST /shopping-list
func (h *ShoppingHandler) AddItem(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.AddShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.shoppingService.Add(c.Request.Context(), userID.(string), req)
	if err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /shopping-list/:itemId
// Promoting a suggestion to a regular entry is an update that clears
// isSuggestion on the full document.
func (h *ShoppingHandler) UpdateItem(c *gin.Context) {
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

	var item models.ShoppingListItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	item.ID = itemID

	if err := h.shoppingService.Update(c.Request.Context(), userID.(string), item); err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /shopping-list/:itemId
func (h *ShoppingHandler) DeleteItem(c *gin.Context) {
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

	if err := h.shoppingService.Delete(c.Request.Context(), userID.(string), itemID); err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePurchased handles PATCH /shopping-list/:itemId/purchased
func (h *ShoppingHandler) TogglePurchased(c *gin.Context) {
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

	var req models.TogglePurchasedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPurchased == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: "isPurchased is required"})
		return
	}

	if err := h.shoppingService.TogglePurchased(c.Request.Context(), userID.(string), itemID, *req.IsPurchased); err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Item updated"})
}

// ClearSuggestions handles DELETE /shopping-list/suggestions
func (h *ShoppingHandler) ClearSuggestions(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	removed, err := h.shoppingService.ClearSuggestions(c.Request.Context(), userID.(string))
	if err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ClearSuggestionsResponse{Removed: removed})
}

// Share handles GET /shopping-list/share
func (h *ShoppingHandler) Share(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	text, err := h.shoppingService.ShareText(c.Request.Context(), userID.(string))
	if err != nil {
		mapShoppingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ShareTextResponse{Text: text})
}
