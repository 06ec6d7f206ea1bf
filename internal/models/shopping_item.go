package models

// Suggestion reasons attached by the suggestion engine.
const (
	SuggestionReasonExpired  = "Expired"
	SuggestionReasonLowStock = "Low Stock"
)

// ShoppingListItem represents an entry on a user's shopping list.
// An item is either a manual entry or an engine-generated suggestion;
// IsSuggestion decides which section it belongs to, never both.
type ShoppingListItem struct {
	ID               string  `json:"id" firestore:"-"` // Document ID
	Name             string  `json:"name" firestore:"name"`
	Quantity         float64 `json:"quantity" firestore:"quantity"`
	Unit             string  `json:"unit" firestore:"unit"`
	IsPurchased      bool    `json:"isPurchased" firestore:"isPurchased"`
	IsSuggestion     bool    `json:"isSuggestion" firestore:"isSuggestion"`
	ImageURL         string  `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	SuggestionReason string  `json:"suggestionReason,omitempty" firestore:"suggestionReason,omitempty"`
	AddedAt          int64   `json:"addedAt" firestore:"addedAt"` // Unix milliseconds
}
