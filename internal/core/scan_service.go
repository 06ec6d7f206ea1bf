package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// Custom errors for the ScanService
var (
	ErrEmptyImage = errors.New("image payload is empty")
	ErrScanFailed = errors.New("image scan failed")
)

// defaultScanExpiryOffset is the fallback shelf life applied when the
// model returns no expiry estimate for a recognized item.
const defaultScanExpiryOffset = 7 * millisPerDay

const scanPromptTemplate = `Analyze this image of groceries or food items.
Identify every distinct food item visible.

Return ONLY a valid JSON array of objects. Do not include markdown formatting.
Each object should have the following fields:
- "name": String (the item name, e.g. "Milk")
- "quantity": Number (estimated count or amount, default 1)
- "unit": String (e.g. "pcs", "kg", "L", default "pcs")
- "category": String (e.g. "Dairy", "Vegetables", "Fruits", "Meat", "Grains")
- "location": String (where this item is typically stored: "Fridge", "Freezer", or "Pantry". Dairy/meat/fresh produce go in Fridge, frozen goods in Freezer, dry goods in Pantry)
- "expiryDate": Number (estimated shelf life from today in MILLISECONDS, e.g. 604800000 for 7 days. If unsure, use 604800000)`

// scannedItem is the wire shape the vision model is asked to produce.
type scannedItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category"`
	Location   string  `json:"location"`
	ExpiryDate int64   `json:"expiryDate"` // Offset from now, milliseconds
}

// scanService implements the ScanService interface.
type scanService struct {
	generator     ai.Generator
	inventoryRepo db.InventoryRepository
	notifier      ExpiryNotifier
	now           func() int64
}

// NewScanService creates a new ScanService instance.
func NewScanService(gen ai.Generator, ir db.InventoryRepository, notifier ExpiryNotifier) ScanService {
	return &scanService{
		generator:     gen,
		inventoryRepo: ir,
		notifier:      notifier,
		now:           func() int64 { return time.Now().UnixMilli() },
	}
}

// Scan submits the photo to the vision model and returns candidate items.
// Candidates are not persisted; the caller confirms them separately.
func (s *scanService) Scan(ctx context.Context, userID string, image []byte, mimeType string) (*ScanResult, error) {
	if s.generator == nil {
		return nil, errors.New("scanService: generator not initialized")
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	raw, err := s.generator.GenerateVision(ctx, scanPromptTemplate, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	items, err := s.parseScanResponse(raw)
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		ScanID: uuid.New().String(),
		Items:  items,
	}, nil
}

// parseScanResponse decodes the model output and fills in defaults for
// anything the model omitted. Expiry offsets are converted to absolute
// timestamps here so candidates round-trip as ordinary inventory items.
func (s *scanService) parseScanResponse(raw string) ([]models.FoodItem, error) {
	cleaned := ai.CleanJSONResponse(raw)
	var scanned []scannedItem
	if err := json.Unmarshal([]byte(cleaned), &scanned); err != nil {
		return nil, fmt.Errorf("%w: expected scanned-item array: %v", ai.ErrMalformedResponse, err)
	}

	now := s.now()
	items := make([]models.FoodItem, 0, len(scanned))
	for _, sc := range scanned {
		if sc.Name == "" {
			continue
		}
		item := models.FoodItem{
			Name:      sc.Name,
			Category:  sc.Category,
			Quantity:  sc.Quantity,
			Unit:      sc.Unit,
			Location:  sc.Location,
			AddedDate: now,
		}
		if item.Category == "" {
			item.Category = "General"
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.Unit == "" {
			item.Unit = "pcs"
		}
		if !models.ValidLocation(item.Location) {
			item.Location = models.LocationPantry
		}
		offset := sc.ExpiryDate
		if offset <= 0 {
			offset = defaultScanExpiryOffset
		}
		item.ExpiryDate = now + offset
		items = append(items, item)
	}
	return items, nil
}

// Confirm persists the user-approved candidates as inventory items.
func (s *scanService) Confirm(ctx context.Context, userID string, reqs []models.AddFoodItemRequest) ([]models.FoodItem, error) {
	if s.inventoryRepo == nil {
		return nil, errors.New("scanService: inventoryRepo not initialized")
	}

	now := s.now()
	added := make([]models.FoodItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := itemFromRequest(req, now)
		if err != nil {
			return added, fmt.Errorf("invalid scanned item '%s': %w", req.Name, err)
		}
		itemID, err := s.inventoryRepo.Add(ctx, userID, item)
		if err != nil {
			return added, fmt.Errorf("failed to add scanned item '%s' for user '%s': %w", req.Name, userID, err)
		}
		item.ID = itemID
		if s.notifier != nil && IsExpiringSoon(item.ExpiryDate, now) {
			// Alert failures never block the confirmation itself.
			_ = s.notifier.NotifyItemAdded(ctx, userID, *item)
		}
		added = append(added, *item)
	}
	return added, nil
}
