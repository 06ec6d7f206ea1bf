package api

import "smartkitch-backend-go/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InitializeResponse is returned by POST /users/initialize.
type InitializeResponse struct {
	Profile *models.UserProfile `json:"profile"`
	Created bool                `json:"created"`
}

// PhotoUploadResponse is returned by POST /users/me/photo.
type PhotoUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// LinkResponse carries a generated account-action link. The client is
// responsible for delivering it to the user.
type LinkResponse struct {
	Link string `json:"link"`
}

// ProvidersResponse lists the identity providers linked to the account.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

// WasteSaverResponse pairs the generated recipe with the expiring
// ingredient names it was built from.
type WasteSaverResponse struct {
	Recipe        *models.Recipe `json:"recipe"`
	ExpiringItems []string       `json:"expiringItems"`
}

// ClearSuggestionsResponse reports how many suggestions were removed.
type ClearSuggestionsResponse struct {
	Removed int `json:"removed"`
}

// ShareTextResponse carries the plain-text shopping-list export.
type ShareTextResponse struct {
	Text string `json:"text"`
}

// ExpiryCheckResponse reports how many expiry alerts were sent.
type ExpiryCheckResponse struct {
	Sent int `json:"sent"`
}
