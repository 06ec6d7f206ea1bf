package models

// AddFoodItemRequest represents the request body for adding an inventory item.
type AddFoodItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category,omitempty"`
	Quantity   float64 `json:"quantity" binding:"required"`
	Unit       string  `json:"unit,omitempty"`
	ExpiryDate int64   `json:"expiryDate" binding:"required"`
	Location   string  `json:"location,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

// AddShoppingItemRequest represents the request body for a manual shopping-list entry.
type AddShoppingItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// TogglePurchasedRequest represents the request body for marking an entry purchased.
type TogglePurchasedRequest struct {
	IsPurchased *bool `json:"isPurchased" binding:"required"`
}

// SaveProfileRequest represents the request body for saving the settings document.
type SaveProfileRequest struct {
	Name                  string   `json:"name" binding:"required"`
	Age                   int      `json:"age,omitempty"`
	FoodPreference        string   `json:"foodPreference,omitempty"`
	DietRestrictions      []string `json:"dietRestrictions,omitempty"`
	PreferredCuisine      string   `json:"preferredCuisine,omitempty"`
	SpiceLevel            float64  `json:"spiceLevel,omitempty"`
	CookingTime           string   `json:"cookingTime,omitempty"`
	VoiceAssistantEnabled bool     `json:"voiceAssistantEnabled,omitempty"`
	AutoRemoveExpired     bool     `json:"autoRemoveExpired,omitempty"`
	AppLanguage           string   `json:"appLanguage,omitempty"`
	Region                string   `json:"region,omitempty"`
	ExpiryAlerts          bool     `json:"expiryAlerts"`
	AISuggestions         bool     `json:"aiSuggestions"`
}

// RegisterDeviceTokenRequest carries an FCM registration token for expiry alerts.
type RegisterDeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ScanRequest represents the request body for an image scan.
// ImageBase64 holds the captured photo; MimeType is e.g. "image/jpeg".
type ScanRequest struct {
	ImageBase64 string `json:"imageBase64" binding:"required"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ConfirmScanRequest adds user-confirmed scan candidates to the inventory.
type ConfirmScanRequest struct {
	Items []AddFoodItemRequest `json:"items" binding:"required"`
}

// SaveRecipeRequest represents the request body for saving a generated recipe.
type SaveRecipeRequest struct {
	Recipe Recipe `json:"recipe" binding:"required"`
}

// PasswordChangeRequest represents the request body for changing the password.
type PasswordChangeRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// PasswordResetRequest represents the request body for a password reset email.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
