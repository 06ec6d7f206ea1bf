package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// SuggestionEngine watches each user's inventory and settings and maintains
// automatic shopping-list suggestions:
//
//   - Expired items become "Expired" suggestions and are removed from the
//     inventory, but only while the user's auto-remove setting is on.
//   - Low-stock items become "Low Stock" suggestions unconditionally.
//
// One watcher goroutine runs per user. EnsureRunning is idempotent, so
// every authenticated request can call it cheaply.
type SuggestionEngine struct {
	inventoryRepo db.InventoryRepository
	shoppingRepo  db.ShoppingListRepository
	profileRepo   db.ProfileRepository
	logger        *zap.Logger
	now           func() int64

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewSuggestionEngine creates a SuggestionEngine. Start watchers with
// EnsureRunning; Stop tears all of them down.
func NewSuggestionEngine(
	ir db.InventoryRepository,
	sr db.ShoppingListRepository,
	pr db.ProfileRepository,
	logger *zap.Logger,
) *SuggestionEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionEngine{
		inventoryRepo: ir,
		shoppingRepo:  sr,
		profileRepo:   pr,
		logger:        logger,
		now:           func() int64 { return time.Now().UnixMilli() },
		cancels:       make(map[string]context.CancelFunc),
	}
}

// EnsureRunning starts the watcher goroutine for the user if one is not
// already running.
func (e *SuggestionEngine) EnsureRunning(userID string) {
	if userID == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, running := e.cancels[userID]; running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancels[userID] = cancel
	e.wg.Add(1)
	go e.run(ctx, userID)
}

// StopUser cancels the watcher for a single user, if running.
func (e *SuggestionEngine) StopUser(userID string) {
	e.mu.Lock()
	cancel, ok := e.cancels[userID]
	if ok {
		delete(e.cancels, userID)
	}
	e.mu.Unlock()
	if ok {
		cancel()
	}
}

// Stop cancels every watcher and waits for their goroutines to exit.
func (e *SuggestionEngine) Stop() {
	e.mu.Lock()
	for userID, cancel := range e.cancels {
		cancel()
		delete(e.cancels, userID)
	}
	e.mu.Unlock()
	e.wg.Wait()
}

// run is the per-user watcher loop. It combines the latest inventory
// snapshot with the latest settings document and re-evaluates the rules on
// every emission from either side. Evaluation starts only after the first
// inventory snapshot has arrived; a missing settings document counts as
// all-defaults (auto-remove off).
func (e *SuggestionEngine) run(ctx context.Context, userID string) {
	defer e.wg.Done()
	defer e.StopUser(userID)

	log := e.logger.With(zap.String("userID", userID))

	invCh, err := e.inventoryRepo.Watch(ctx, userID)
	if err != nil {
		log.Error("suggestion engine: inventory watch failed", zap.Error(err))
		return
	}
	profCh, err := e.profileRepo.Watch(ctx, userID)
	if err != nil {
		log.Error("suggestion engine: profile watch failed", zap.Error(err))
		return
	}

	var (
		items        []models.FoodItem
		profile      *models.UserProfile
		haveSnapshot bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-invCh:
			if !ok {
				log.Warn("suggestion engine: inventory watch closed")
				return
			}
			items = snap
			haveSnapshot = true
		case p, ok := <-profCh:
			if !ok {
				log.Warn("suggestion engine: profile watch closed")
				return
			}
			profile = p
		}
		if haveSnapshot {
			e.evaluate(ctx, userID, items, profile, log)
		}
	}
}

// evaluate applies both rules to one inventory snapshot. Each write is
// independent: a failed suggestion insert or item delete is logged and the
// pass moves on, so one bad document never stalls the rest.
func (e *SuggestionEngine) evaluate(ctx context.Context, userID string, items []models.FoodItem, profile *models.UserProfile, log *zap.Logger) {
	now := e.now()
	autoRemove := profile != nil && profile.AutoRemoveExpired

	for _, item := range items {
		switch {
		case IsExpired(item.ExpiryDate, now):
			if !autoRemove {
				continue
			}
			// Suggestion first, then removal. If the delete fails the item
			// stays and is retried on the next snapshot.
			if err := e.addSuggestion(ctx, userID, item, models.SuggestionReasonExpired, now); err != nil {
				log.Error("suggestion engine: failed to add expired suggestion",
					zap.String("item", item.Name), zap.Error(err))
				continue
			}
			if err := e.inventoryRepo.Delete(ctx, userID, item.ID); err != nil {
				log.Error("suggestion engine: failed to remove expired item",
					zap.String("item", item.Name), zap.Error(err))
			}
		case IsLowStock(item, now):
			if err := e.addSuggestion(ctx, userID, item, models.SuggestionReasonLowStock, now); err != nil {
				log.Error("suggestion engine: failed to add low-stock suggestion",
					zap.String("item", item.Name), zap.Error(err))
			}
		}
	}
}

func (e *SuggestionEngine) addSuggestion(ctx context.Context, userID string, item models.FoodItem, reason string, now int64) error {
	suggestion := &models.ShoppingListItem{
		Name:             item.Name,
		Quantity:         item.Quantity,
		Unit:             item.Unit,
		ImageURL:         item.ImageURL,
		IsSuggestion:     true,
		SuggestionReason: reason,
		AddedAt:          now,
	}
	_, err := e.shoppingRepo.Add(ctx, userID, suggestion)
	return err
}
