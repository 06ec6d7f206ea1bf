package core

import (
	"context"
	"fmt"
	"sync"

	"firebase.google.com/go/v4/messaging"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// fakeInventoryRepo is an in-memory InventoryRepository for tests.
type fakeInventoryRepo struct {
	mu      sync.Mutex
	items   []models.FoodItem
	deleted []string
	nextID  int
	listErr error
	watchCh chan []models.FoodItem
}

func newFakeInventoryRepo(items ...models.FoodItem) *fakeInventoryRepo {
	return &fakeInventoryRepo{
		items:   items,
		watchCh: make(chan []models.FoodItem, 8),
	}
}

func (f *fakeInventoryRepo) List(ctx context.Context, userID string) ([]models.FoodItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.FoodItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeInventoryRepo) Add(ctx context.Context, userID string, item *models.FoodItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("item-%d", f.nextID)
	item.ID = id
	f.items = append(f.items, *item)
	return id, nil
}

func (f *fakeInventoryRepo) Set(ctx context.Context, userID string, item *models.FoodItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeInventoryRepo) Delete(ctx context.Context, userID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.deleted = append(f.deleted, itemID)
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeInventoryRepo) Watch(ctx context.Context, userID string) (<-chan []models.FoodItem, error) {
	return f.watchCh, nil
}

func (f *fakeInventoryRepo) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deleted))
	copy(out, f.deleted)
	return out
}

// fakeShoppingRepo is an in-memory ShoppingListRepository for tests.
type fakeShoppingRepo struct {
	mu      sync.Mutex
	items   []models.ShoppingListItem
	nextID  int
	watchCh chan []models.ShoppingListItem
}

func newFakeShoppingRepo(items ...models.ShoppingListItem) *fakeShoppingRepo {
	return &fakeShoppingRepo{
		items:   items,
		watchCh: make(chan []models.ShoppingListItem, 8),
	}
}

func (f *fakeShoppingRepo) List(ctx context.Context, userID string) ([]models.ShoppingListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ShoppingListItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeShoppingRepo) Add(ctx context.Context, userID string, item *models.ShoppingListItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("entry-%d", f.nextID)
	item.ID = id
	f.items = append(f.items, *item)
	return id, nil
}

func (f *fakeShoppingRepo) Set(ctx context.Context, userID string, item *models.ShoppingListItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeShoppingRepo) Delete(ctx context.Context, userID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeShoppingRepo) SetPurchased(ctx context.Context, userID, itemID string, purchased bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].IsPurchased = purchased
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeShoppingRepo) Watch(ctx context.Context, userID string) (<-chan []models.ShoppingListItem, error) {
	return f.watchCh, nil
}

func (f *fakeShoppingRepo) snapshot() []models.ShoppingListItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ShoppingListItem, len(f.items))
	copy(out, f.items)
	return out
}

// fakeProfileRepo is an in-memory ProfileRepository for tests.
type fakeProfileRepo struct {
	mu          sync.Mutex
	profile     *models.UserProfile
	deletedData bool
	watchCh     chan *models.UserProfile
}

func newFakeProfileRepo(profile *models.UserProfile) *fakeProfileRepo {
	return &fakeProfileRepo{
		profile: profile,
		watchCh: make(chan *models.UserProfile, 8),
	}
}

func (f *fakeProfileRepo) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return nil, db.ErrNotFound
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeProfileRepo) Set(ctx context.Context, userID string, profile *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *profile
	f.profile = &p
	return nil
}

func (f *fakeProfileRepo) SetDeviceToken(ctx context.Context, userID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return db.ErrNotFound
	}
	f.profile.DeviceToken = token
	return nil
}

func (f *fakeProfileRepo) Watch(ctx context.Context, userID string) (<-chan *models.UserProfile, error) {
	return f.watchCh, nil
}

func (f *fakeProfileRepo) DeleteUserData(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = nil
	f.deletedData = true
	return nil
}

// fakeRecipeRepo is an in-memory SavedRecipeRepository for tests.
type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes []models.SavedRecipe
	nextID  int
}

func (f *fakeRecipeRepo) List(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SavedRecipe, len(f.recipes))
	copy(out, f.recipes)
	return out, nil
}

func (f *fakeRecipeRepo) Save(ctx context.Context, userID string, recipe *models.SavedRecipe) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("recipe-%d", f.nextID)
	recipe.ID = id
	f.recipes = append(f.recipes, *recipe)
	return id, nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, userID, recipeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recipes {
		if f.recipes[i].ID == recipeID {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

// fakeGenerator is a scripted ai.Generator for tests.
type fakeGenerator struct {
	mu             sync.Mutex
	textResponse   string
	textErr        error
	visionResponse string
	visionErr      error
	textCalls      int
	visionCalls    int
	lastPrompt     string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls++
	f.lastPrompt = prompt
	return f.textResponse, f.textErr
}

func (f *fakeGenerator) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visionCalls++
	f.lastPrompt = prompt
	return f.visionResponse, f.visionErr
}

// fakeSender records push messages instead of sending them.
type fakeSender struct {
	mu   sync.Mutex
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, message *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

// fakeExpiryNotifier records immediate-alert calls.
type fakeExpiryNotifier struct {
	mu       sync.Mutex
	notified []models.FoodItem
}

func (f *fakeExpiryNotifier) CheckAndNotify(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeExpiryNotifier) NotifyItemAdded(ctx context.Context, userID string, item models.FoodItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, item)
	return nil
}
