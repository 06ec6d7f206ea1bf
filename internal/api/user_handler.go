package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/models"
)

// maxPhotoSize caps profile photo uploads at 10 MiB.
const maxPhotoSize = 10 << 20

// UserHandler handles API endpoints related to the user profile and account.
type UserHandler struct {
	profileService core.ProfileService
	accountService core.AccountService
	engine         *core.SuggestionEngine
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(ps core.ProfileService, as core.AccountService, engine *core.SuggestionEngine) *UserHandler {
	return &UserHandler{profileService: ps, accountService: as, engine: engine}
}

// mapUserErrorToStatus maps errors from the profile and account services to HTTP status codes.
func mapUserErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrProfileNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrProfileNotFound.Error()}
	case errors.Is(err, core.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrUserNotFound.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// InitializeUser handles POST /users/initialize
// It ensures the settings document exists and starts the user's suggestion
// watcher. Clients call it once after sign-in.
func (h *UserHandler) InitializeUser(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	displayName := c.GetString("userDisplayName")

	profile, created, err := h.accountService.EnsureProfile(c.Request.Context(), userID.(string), displayName)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}

	if h.engine != nil {
		h.engine.EnsureRunning(userID.(string))
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, InitializeResponse{Profile: profile, Created: created})
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID.(string))
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile handles PUT /users/me
func (h *UserHandler) SaveProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	profile, err := h.profileService.Save(c.Request.Context(), userID.(string), req)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadPhoto handles POST /users/me/photo
// The photo is sent as a multipart form under the "photo" field.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'photo' form file is required", Details: err.Error()})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Photo exceeds the 10 MiB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded photo", Details: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded photo", Details: err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.profileService.UploadPhoto(c.Request.Context(), userID.(string), data, contentType)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, PhotoUploadResponse{ImageURL: url})
}

// RegisterDeviceToken handles POST /users/me/device-token
func (h *UserHandler) RegisterDeviceToken(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.profileService.RegisterDeviceToken(c.Request.Context(), userID.(string), req.Token); err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Device token registered"})
}

// DeleteAccount handles DELETE /users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	if h.engine != nil {
		h.engine.StopUser(userID.(string))
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID.(string)); err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
