package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartkitch-backend-go/internal/models"
)

func TestShoppingAddDefaults(t *testing.T) {
	repo := newFakeShoppingRepo()
	svc := NewShoppingListService(repo)

	item, err := svc.Add(context.Background(), "user-1", models.AddShoppingItemRequest{Name: "Bread"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, "pcs", item.Unit)
	assert.False(t, item.IsSuggestion)
	assert.NotZero(t, item.AddedAt)
}

func TestClearSuggestions(t *testing.T) {
	repo := newFakeShoppingRepo(
		models.ShoppingListItem{ID: "e1", Name: "Milk", IsSuggestion: true, SuggestionReason: models.SuggestionReasonExpired},
		models.ShoppingListItem{ID: "e2", Name: "Bread"},
		models.ShoppingListItem{ID: "e3", Name: "Eggs", IsSuggestion: true, SuggestionReason: models.SuggestionReasonLowStock},
	)
	svc := NewShoppingListService(repo)

	removed, err := svc.ClearSuggestions(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	remaining := repo.snapshot()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Bread", remaining[0].Name)
}

func TestShareText(t *testing.T) {
	t.Run("renders purchased entries only", func(t *testing.T) {
		repo := newFakeShoppingRepo(
			models.ShoppingListItem{ID: "e1", Name: "Milk", Quantity: 2, Unit: "L", IsPurchased: true},
			models.ShoppingListItem{ID: "e2", Name: "Bread", Quantity: 1, Unit: "pcs"},
			models.ShoppingListItem{ID: "e3", Name: "Eggs", Quantity: 12, Unit: "pcs", IsPurchased: true},
		)
		svc := NewShoppingListService(repo)

		text, err := svc.ShareText(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Contains(t, text, "Grocery Shopping List")
		assert.Contains(t, text, "- Milk: 2 L")
		assert.Contains(t, text, "- Eggs: 12 pcs")
		assert.NotContains(t, text, "Bread")
		assert.Contains(t, text, "Sent from SmartKitch")
	})

	t.Run("empty when nothing purchased", func(t *testing.T) {
		repo := newFakeShoppingRepo(
			models.ShoppingListItem{ID: "e1", Name: "Milk", Quantity: 1, Unit: "L"},
		)
		svc := NewShoppingListService(repo)

		text, err := svc.ShareText(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestTogglePurchasedNotFound(t *testing.T) {
	svc := NewShoppingListService(newFakeShoppingRepo())
	err := svc.TogglePurchased(context.Background(), "user-1", "missing", true)
	require.ErrorIs(t, err, ErrShoppingItemNotFound)
}

func TestUpdatePromotesSuggestion(t *testing.T) {
	repo := newFakeShoppingRepo(
		models.ShoppingListItem{ID: "e1", Name: "Milk", Quantity: 1, Unit: "L", IsSuggestion: true, SuggestionReason: models.SuggestionReasonExpired},
	)
	svc := NewShoppingListService(repo)

	err := svc.Update(context.Background(), "user-1", models.ShoppingListItem{
		ID: "e1", Name: "Milk", Quantity: 2, Unit: "L",
	})
	require.NoError(t, err)

	items := repo.snapshot()
	require.Len(t, items, 1)
	assert.False(t, items[0].IsSuggestion)
	assert.Equal(t, 2.0, items[0].Quantity)
}
