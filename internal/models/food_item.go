package models

// Location values for a FoodItem. Stored as plain strings to stay
// wire-compatible with documents written by the mobile clients.
const (
	LocationFridge  = "Fridge"
	LocationFreezer = "Freezer"
	LocationPantry  = "Pantry"
)

// FoodItem represents a single item in a user's inventory.
// Timestamps are Unix milliseconds, matching the document format the
// mobile clients already write.
type FoodItem struct {
	ID         string  `json:"id" firestore:"-"` // Document ID
	Name       string  `json:"name" firestore:"name"`
	Category   string  `json:"category" firestore:"category"`
	Quantity   float64 `json:"quantity" firestore:"quantity"`
	Unit       string  `json:"unit" firestore:"unit"`
	ExpiryDate int64   `json:"expiryDate" firestore:"expiryDate"`
	AddedDate  int64   `json:"addedDate" firestore:"addedDate"`
	Location   string  `json:"location" firestore:"location"`
	ImageURL   string  `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
}

// ValidLocation reports whether loc is one of the three storage locations.
func ValidLocation(loc string) bool {
	switch loc {
	case LocationFridge, LocationFreezer, LocationPantry:
		return true
	}
	return false
}
