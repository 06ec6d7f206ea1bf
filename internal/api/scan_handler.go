package api

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/models"
)

// ScanHandler handles API endpoints for camera-scan ingestion.
type ScanHandler struct {
	scanService core.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(ss core.ScanService) *ScanHandler {
	return &ScanHandler{scanService: ss}
}

func mapScanErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrEmptyImage):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrEmptyImage.Error()}
	case errors.Is(err, core.ErrInvalidLocation):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrInvalidLocation.Error(), Details: err.Error()}
	case errors.Is(err, ai.ErrMalformedResponse), errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, core.ErrScanFailed):
		log.Printf("Model error: %v", err)
		statusCode = http.StatusBadGateway
		errResponse = ErrorResponse{Error: "Image scan failed, please try again"}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// Scan handles POST /scan
func (h *ScanHandler) Scan(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "imageBase64 is not valid base64", Details: err.Error()})
		return
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	result, err := h.scanService.Scan(c.Request.Context(), userID.(string), image, mimeType)
	if err != nil {
		mapScanErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Confirm handles POST /scan/confirm
func (h *ScanHandler) Confirm(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.ConfirmScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one item is required"})
		return
	}

	added, err := h.scanService.Confirm(c.Request.Context(), userID.(string), req.Items)
	if err != nil {
		mapScanErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}
