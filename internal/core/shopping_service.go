package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// Custom errors for the ShoppingListService
var (
	ErrShoppingItemNotFound = errors.New("shopping list item not found")
)

// shoppingListService implements the ShoppingListService interface.
type shoppingListService struct {
	shoppingRepo db.ShoppingListRepository
	now          func() int64
}

// NewShoppingListService creates a new ShoppingListService instance.
func NewShoppingListService(sr db.ShoppingListRepository) ShoppingListService {
	return &shoppingListService{
		shoppingRepo: sr,
		now:          func() int64 { return time.Now().UnixMilli() },
	}
}

// List returns the user's shopping list, newest first.
func (s *shoppingListService) List(ctx context.Context, userID string) ([]models.ShoppingListItem, error) {
	if s.shoppingRepo == nil {
		return nil, errors.New("shoppingListService: shoppingRepo not initialized")
	}
	items, err := s.shoppingRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping entries for user '%s': %w", userID, err)
	}
	return items, nil
}

// Add creates a manual (non-suggestion) entry.
func (s *shoppingListService) Add(ctx context.Context, userID string, req models.AddShoppingItemRequest) (*models.ShoppingListItem, error) {
	if s.shoppingRepo == nil {
		return nil, errors.New("shoppingListService: shoppingRepo not initialized")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	item := &models.ShoppingListItem{
		Name:     req.Name,
		Quantity: quantity,
		Unit:     unit,
		ImageURL: req.ImageURL,
		AddedAt:  s.now(),
	}
	itemID, err := s.shoppingRepo.Add(ctx, userID, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping entry for user '%s': %w", userID, err)
	}
	item.ID = itemID
	return item, nil
}

// Update overwrites an existing entry. Clearing IsSuggestion through this
// path is how a suggestion gets promoted to a regular item.
func (s *shoppingListService) Update(ctx context.Context, userID string, item models.ShoppingListItem) error {
	if s.shoppingRepo == nil {
		return errors.New("shoppingListService: shoppingRepo not initialized")
	}
	if item.ID == "" {
		return fmt.Errorf("%w: empty item ID", ErrShoppingItemNotFound)
	}
	if err := s.shoppingRepo.Set(ctx, userID, &item); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: item '%s'", ErrShoppingItemNotFound, item.ID)
		}
		return fmt.Errorf("failed to update shopping entry '%s' for user '%s': %w", item.ID, userID, err)
	}
	return nil
}

// Delete removes an entry.
func (s *shoppingListService) Delete(ctx context.Context, userID, itemID string) error {
	if s.shoppingRepo == nil {
		return errors.New("shoppingListService: shoppingRepo not initialized")
	}
	if err := s.shoppingRepo.Delete(ctx, userID, itemID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: item '%s'", ErrShoppingItemNotFound, itemID)
		}
		return fmt.Errorf("failed to delete shopping entry '%s' for user '%s': %w", itemID, userID, err)
	}
	return nil
}

// TogglePurchased flips the purchased flag on a single entry.
func (s *shoppingListService) TogglePurchased(ctx context.Context, userID, itemID string, purchased bool) error {
	if s.shoppingRepo == nil {
		return errors.New("shoppingListService: shoppingRepo not initialized")
	}
	if err := s.shoppingRepo.SetPurchased(ctx, userID, itemID, purchased); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: item '%s'", ErrShoppingItemNotFound, itemID)
		}
		return fmt.Errorf("failed to toggle purchased on entry '%s' for user '%s': %w", itemID, userID, err)
	}
	return nil
}

// ClearSuggestions deletes every suggestion entry, returning the count removed.
func (s *shoppingListService) ClearSuggestions(ctx context.Context, userID string) (int, error) {
	if s.shoppingRepo == nil {
		return 0, errors.New("shoppingListService: shoppingRepo not initialized")
	}
	items, err := s.shoppingRepo.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list shopping entries for user '%s': %w", userID, err)
	}

	removed := 0
	for _, item := range items {
		if !item.IsSuggestion {
			continue
		}
		if err := s.shoppingRepo.Delete(ctx, userID, item.ID); err != nil {
			return removed, fmt.Errorf("failed to delete suggestion '%s' for user '%s': %w", item.ID, userID, err)
		}
		removed++
	}
	return removed, nil
}

// ShareText renders the purchased entries as a plain-text list suitable for
// a share sheet. An empty string means nothing is selected.
func (s *shoppingListService) ShareText(ctx context.Context, userID string) (string, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}

	var selected []models.ShoppingListItem
	for _, item := range items {
		if item.IsPurchased {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("Grocery Shopping List\n")
	sb.WriteString("---------------------\n")
	for _, item := range selected {
		fmt.Fprintf(&sb, "- %s: %g %s\n", item.Name, item.Quantity, item.Unit)
	}
	sb.WriteString("\nSent from SmartKitch\n")
	return sb.String(), nil
}
