package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// Custom errors for the InventoryService
var (
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrInvalidLocation = errors.New("invalid storage location")
)

// inventoryService implements the InventoryService interface.
type inventoryService struct {
	inventoryRepo db.InventoryRepository
	notifier      ExpiryNotifier
	now           func() int64 // Unix milliseconds; injectable for tests
}

// NewInventoryService creates a new InventoryService instance.
func NewInventoryService(ir db.InventoryRepository, notifier ExpiryNotifier) InventoryService {
	return &inventoryService{
		inventoryRepo: ir,
		notifier:      notifier,
		now:           func() int64 { return time.Now().UnixMilli() },
	}
}

// List returns the user's full inventory snapshot.
func (s *inventoryService) List(ctx context.Context, userID string) ([]models.FoodItem, error) {
	if s.inventoryRepo == nil {
		return nil, errors.New("inventoryService: inventoryRepo not initialized")
	}
	items, err := s.inventoryRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for user '%s': %w", userID, err)
	}
	return items, nil
}

// itemFromRequest applies the add-form defaults the clients rely on.
func itemFromRequest(req models.AddFoodItemRequest, now int64) (*models.FoodItem, error) {
	category := req.Category
	if category == "" {
		category = "General"
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	location := req.Location
	if location == "" {
		location = models.LocationFridge
	}
	if !models.ValidLocation(location) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	return &models.FoodItem{
		Name:       req.Name,
		Category:   category,
		Quantity:   req.Quantity,
		Unit:       unit,
		ExpiryDate: req.ExpiryDate,
		AddedDate:  now,
		Location:   location,
		ImageURL:   req.ImageURL,
	}, nil
}

// Add creates a new inventory item. If the item is already expiring soon it
// triggers an immediate expiry alert.
func (s *inventoryService) Add(ctx context.Context, userID string, req models.AddFoodItemRequest) (*models.FoodItem, error) {
	if s.inventoryRepo == nil {
		return nil, errors.New("inventoryService: inventoryRepo not initialized")
	}

	item, err := itemFromRequest(req, s.now())
	if err != nil {
		return nil, err
	}

	itemID, err := s.inventoryRepo.Add(ctx, userID, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add inventory item for user '%s': %w", userID, err)
	}
	item.ID = itemID

	if s.notifier != nil && IsExpiringSoon(item.ExpiryDate, s.now()) {
		if notifyErr := s.notifier.NotifyItemAdded(ctx, userID, *item); notifyErr != nil {
			// An alert failure must not fail the add itself.
			log.Printf("Warning: failed to send expiry alert for item '%s' (user '%s'): %v", item.ID, userID, notifyErr)
		}
	}

	return item, nil
}

// Update overwrites an existing item with the request payload.
func (s *inventoryService) Update(ctx context.Context, userID, itemID string, req models.AddFoodItemRequest) (*models.FoodItem, error) {
	if s.inventoryRepo == nil {
		return nil, errors.New("inventoryService: inventoryRepo not initialized")
	}
	if itemID == "" {
		return nil, fmt.Errorf("%w: empty item ID", ErrItemNotFound)
	}

	item, err := itemFromRequest(req, s.now())
	if err != nil {
		return nil, err
	}
	item.ID = itemID

	if err := s.inventoryRepo.Set(ctx, userID, item); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: item '%s'", ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to update inventory item '%s' for user '%s': %w", itemID, userID, err)
	}
	return item, nil
}

// Delete removes an inventory item.
func (s *inventoryService) Delete(ctx context.Context, userID, itemID string) error {
	if s.inventoryRepo == nil {
		return errors.New("inventoryService: inventoryRepo not initialized")
	}
	if err := s.inventoryRepo.Delete(ctx, userID, itemID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: item '%s'", ErrItemNotFound, itemID)
		}
		return fmt.Errorf("failed to delete inventory item '%s' for user '%s': %w", itemID, userID, err)
	}
	return nil
}
