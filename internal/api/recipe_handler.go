package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/models"
)

// RecipeHandler handles API endpoints related to recipe generation and
// saved recipes.
type RecipeHandler struct {
	recipeService core.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(rs core.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: rs}
}

// mapRecipeErrorToStatus maps errors from core.RecipeService to HTTP status codes.
// Model failures surface as 502: the upstream model, not this service, failed.
func mapRecipeErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrNoIngredients):
		statusCode = http.StatusUnprocessableEntity
		errResponse = ErrorResponse{Error: core.ErrNoIngredients.Error()}
	case errors.Is(err, core.ErrNoExpiringItems):
		statusCode = http.StatusUnprocessableEntity
		errResponse = ErrorResponse{Error: core.ErrNoExpiringItems.Error()}
	case errors.Is(err, core.ErrRecipeNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrRecipeNotFound.Error()}
	case errors.Is(err, ai.ErrMalformedResponse), errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, core.ErrRecipeGeneration):
		log.Printf("Model error: %v", err)
		statusCode = http.StatusBadGateway
		errResponse = ErrorResponse{Error: "Recipe generation failed, please try again"}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// Generate handles POST /recipes/generate
func (h *RecipeHandler) Generate(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	recipes, err := h.recipeService.Generate(c.Request.Context(), userID.(string))
	if err != nil {
		mapRecipeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GenerateWasteSaver handles POST /recipes/waste-saver
func (h *RecipeHandler) GenerateWasteSaver(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	recipe, expiring, err := h.recipeService.GenerateWasteSaver(c.Request.Context(), userID.(string))
	if err != nil {
		mapRecipeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, WasteSaverResponse{Recipe: recipe, ExpiringItems: expiring})
}

// ListSaved handles GET /recipes/saved
func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	recipes, err := h.recipeService.ListSaved(c.Request.Context(), userID.(string))
	if err != nil {
		mapRecipeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Save handles POST /recipes/saved
func (h *RecipeHandler) Save(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Recipe.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Recipe title is required"})
		return
	}

	saved, err := h.recipeService.Save(c.Request.Context(), userID.(string), req.Recipe)
	if err != nil {
		mapRecipeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteSaved handles DELETE /recipes/saved/:recipeId
func (h *RecipeHandler) DeleteSaved(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	recipeID := c.Param("recipeId")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Recipe ID is required"})
		return
	}

	if err := h.recipeService.DeleteSaved(c.Request.Context(), userID.(string), recipeID); err != nil {
		mapRecipeErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
