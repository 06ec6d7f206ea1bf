package db

import (
	"context"

	"smartkitch-backend-go/internal/models"
)

// InventoryRepository defines the interface for inventory data storage operations.
// Watch returns a live subscription: a fresh, fully-materialized snapshot of the
// user's inventory is delivered on every underlying change until ctx is canceled.
type InventoryRepository interface {
	List(ctx context.Context, userID string) ([]models.FoodItem, error)
	Add(ctx context.Context, userID string, item *models.FoodItem) (string, error) // Returns new item ID
	Set(ctx context.Context, userID string, item *models.FoodItem) error           // Overwrite by ID
	Delete(ctx context.Context, userID, itemID string) error
	Watch(ctx context.Context, userID string) (<-chan []models.FoodItem, error)
}

// ShoppingListRepository defines the interface for shopping-list data storage operations.
type ShoppingListRepository interface {
	List(ctx context.Context, userID string) ([]models.ShoppingListItem, error)
	Add(ctx context.Context, userID string, item *models.ShoppingListItem) (string, error)
	Set(ctx context.Context, userID string, item *models.ShoppingListItem) error
	Delete(ctx context.Context, userID, itemID string) error
	// SetPurchased updates the single isPurchased field without touching the rest
	// of the document.
	SetPurchased(ctx context.Context, userID, itemID string, purchased bool) error
	Watch(ctx context.Context, userID string) (<-chan []models.ShoppingListItem, error)
}

// ProfileRepository defines the interface for the per-user settings document.
// Watch delivers the current profile (nil while it does not exist yet) on every
// change until ctx is canceled.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Set(ctx context.Context, userID string, profile *models.UserProfile) error
	// SetDeviceToken updates the single deviceToken field.
	SetDeviceToken(ctx context.Context, userID, token string) error
	Watch(ctx context.Context, userID string) (<-chan *models.UserProfile, error)
	// DeleteUserData removes every document stored under the user's tree.
	DeleteUserData(ctx context.Context, userID string) error
}

// SavedRecipeRepository defines the interface for saved-recipe storage operations.
type SavedRecipeRepository interface {
	List(ctx context.Context, userID string) ([]models.SavedRecipe, error)
	Save(ctx context.Context, userID string, recipe *models.SavedRecipe) (string, error)
	Delete(ctx context.Context, userID, recipeID string) error
}

// ImageStore defines the interface for object-storage uploads.
type ImageStore interface {
	// UploadProfileImage stores the user's profile photo and returns its
	// public download URL.
	UploadProfileImage(ctx context.Context, userID string, data []byte, contentType string) (string, error)
	// UploadItemImage stores an item photo under a generated name and returns
	// its public download URL.
	UploadItemImage(ctx context.Context, userID string, data []byte, contentType string) (string, error)
}
