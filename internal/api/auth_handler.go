package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/models"
)

// AuthHandler handles admin-side account operations. Sign-in itself happens
// against the identity provider on the client; these endpoints cover the
// server-generated links and password management.
type AuthHandler struct {
	accountService core.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AccountService) *AuthHandler {
	return &AuthHandler{accountService: as}
}

func mapAuthErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
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

// SendVerificationEmail handles POST /auth/verification-email
// The generated link is returned to the client, which delivers it.
func (h *AuthHandler) SendVerificationEmail(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	link, err := h.accountService.VerificationLink(c.Request.Context(), userID.(string))
	if err != nil {
		mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, LinkResponse{Link: link})
}

// RequestPasswordReset handles POST /auth/password-reset
// This endpoint is public: a reset must work for users who cannot sign in.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	link, err := h.accountService.PasswordResetLink(c.Request.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the address has an account.
		log.Printf("Password reset link generation failed: %v", err)
		c.JSON(http.StatusOK, SuccessResponse{Message: "If the address has an account, a reset link was generated"})
		return
	}
	c.JSON(http.StatusOK, LinkResponse{Link: link})
}

// ChangePassword handles POST /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.accountService.ChangePassword(c.Request.Context(), userID.(string), req.NewPassword); err != nil {
		mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Password changed"})
}

// ListProviders handles GET /auth/providers
func (h *AuthHandler) ListProviders(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	providers, err := h.accountService.Providers(c.Request.Context(), userID.(string))
	if err != nil {
		mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ProvidersResponse{Providers: providers})
}
