package core

import (
	"context"

	"smartkitch-backend-go/internal/models"
)

// InventoryService defines the interface for inventory operations.
type InventoryService interface {
	List(ctx context.Context, userID string) ([]models.FoodItem, error)
	Add(ctx context.Context, userID string, req models.AddFoodItemRequest) (*models.FoodItem, error)
	// Update overwrites an existing item. Updates are full replacements,
	// matching what the stored documents' writers send.
	Update(ctx context.Context, userID, itemID string, req models.AddFoodItemRequest) (*models.FoodItem, error)
	Delete(ctx context.Context, userID, itemID string) error
}

// ShoppingListService defines the interface for shopping-list operations.
type ShoppingListService interface {
	List(ctx context.Context, userID string) ([]models.ShoppingListItem, error)
	Add(ctx context.Context, userID string, req models.AddShoppingItemRequest) (*models.ShoppingListItem, error)
	Update(ctx context.Context, userID string, item models.ShoppingListItem) error
	Delete(ctx context.Context, userID, itemID string) error
	TogglePurchased(ctx context.Context, userID, itemID string, purchased bool) error
	// ClearSuggestions deletes every engine-generated suggestion entry and
	// returns how many were removed.
	ClearSuggestions(ctx context.Context, userID string) (int, error)
	// ShareText renders the purchased entries as a shareable plain-text list.
	ShareText(ctx context.Context, userID string) (string, error)
}

// ProfileService defines the interface for the per-user settings document.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Save(ctx context.Context, userID string, req models.SaveProfileRequest) (*models.UserProfile, error)
	UploadPhoto(ctx context.Context, userID string, data []byte, contentType string) (string, error)
	RegisterDeviceToken(ctx context.Context, userID, token string) error
}

// RecipeService defines the interface for recipe generation and saved recipes.
type RecipeService interface {
	// Generate builds recipe suggestions from the current inventory and the
	// user's preferences. An empty inventory returns ErrNoIngredients
	// without calling the model.
	Generate(ctx context.Context, userID string) ([]models.Recipe, error)
	// GenerateWasteSaver requests exactly one recipe scoped to items
	// expiring within the next three days. With no such items it returns
	// ErrNoExpiringItems. The second return value lists the expiring
	// ingredient names the recipe was built from.
	GenerateWasteSaver(ctx context.Context, userID string) (*models.Recipe, []string, error)
	ListSaved(ctx context.Context, userID string) ([]models.SavedRecipe, error)
	Save(ctx context.Context, userID string, recipe models.Recipe) (*models.SavedRecipe, error)
	DeleteSaved(ctx context.Context, userID, recipeID string) error
}

// ScanService defines the interface for camera-scan ingestion.
type ScanService interface {
	// Scan submits a photo to the vision model and returns candidate
	// inventory items for user confirmation.
	Scan(ctx context.Context, userID string, image []byte, mimeType string) (*ScanResult, error)
	// Confirm adds user-approved candidates to the inventory.
	Confirm(ctx context.Context, userID string, items []models.AddFoodItemRequest) ([]models.FoodItem, error)
}

// ScanResult carries the candidates of one scan invocation.
type ScanResult struct {
	ScanID string            `json:"scanId"`
	Items  []models.FoodItem `json:"items"`
}

// AccountService defines the interface for identity operations performed
// server-side. Sign-in itself happens against the identity provider on the
// client; this service covers profile bootstrap and admin-side account ops.
type AccountService interface {
	// EnsureProfile retrieves the settings document, creating it with
	// defaults on first contact. The boolean reports whether it was created.
	EnsureProfile(ctx context.Context, userID, displayName string) (*models.UserProfile, bool, error)
	// VerificationLink generates an email-verification link for the user.
	VerificationLink(ctx context.Context, userID string) (string, error)
	// PasswordResetLink generates a password-reset link for the address.
	PasswordResetLink(ctx context.Context, email string) (string, error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
	// Providers lists the identity providers linked to the account.
	Providers(ctx context.Context, userID string) ([]string, error)
	// DeleteAccount removes the auth user and the user's document tree.
	DeleteAccount(ctx context.Context, userID string) error
}

// ExpiryNotifier dispatches expiry alerts to the user's registered device.
type ExpiryNotifier interface {
	// CheckAndNotify sends one alert per item currently expiring soon and
	// returns how many were sent. A profile with alerts disabled or no
	// registered device sends nothing.
	CheckAndNotify(ctx context.Context, userID string) (int, error)
	// NotifyItemAdded alerts immediately when a newly added item is already
	// expiring soon.
	NotifyItemAdded(ctx context.Context, userID string, item models.FoodItem) error
}
