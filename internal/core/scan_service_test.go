package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/models"
)

func newTestScanService(gen *fakeGenerator, inv *fakeInventoryRepo, n *fakeExpiryNotifier) *scanService {
	svc := NewScanService(gen, inv, n).(*scanService)
	svc.now = func() int64 { return testNow }
	return svc
}

func TestScanParsesCandidates(t *testing.T) {
	gen := &fakeGenerator{visionResponse: "```json\n[" +
		`{"name": "Milk", "quantity": 2, "unit": "L", "category": "Dairy", "location": "Fridge", "expiryDate": 259200000},` +
		`{"name": "Crackers"}` +
		"]\n```"}
	svc := newTestScanService(gen, newFakeInventoryRepo(), &fakeExpiryNotifier{})

	result, err := svc.Scan(context.Background(), "user-1", []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	assert.NotEmpty(t, result.ScanID)
	require.Len(t, result.Items, 2)

	milk := result.Items[0]
	assert.Equal(t, "Milk", milk.Name)
	assert.Equal(t, 2.0, milk.Quantity)
	assert.Equal(t, models.LocationFridge, milk.Location)
	assert.Equal(t, testNow+3*millisPerDay, milk.ExpiryDate)
	assert.Equal(t, testNow, milk.AddedDate)

	// Bare name: everything else comes from the defaults.
	crackers := result.Items[1]
	assert.Equal(t, "General", crackers.Category)
	assert.Equal(t, 1.0, crackers.Quantity)
	assert.Equal(t, "pcs", crackers.Unit)
	assert.Equal(t, models.LocationPantry, crackers.Location)
	assert.Equal(t, testNow+7*millisPerDay, crackers.ExpiryDate)
}

func TestScanSkipsNamelessEntries(t *testing.T) {
	gen := &fakeGenerator{visionResponse: `[{"name": ""}, {"name": "Bread"}]`}
	svc := newTestScanService(gen, newFakeInventoryRepo(), &fakeExpiryNotifier{})

	result, err := svc.Scan(context.Background(), "user-1", []byte{1}, "image/png")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Bread", result.Items[0].Name)
}

func TestScanMalformedResponse(t *testing.T) {
	gen := &fakeGenerator{visionResponse: "I see some groceries in this picture."}
	svc := newTestScanService(gen, newFakeInventoryRepo(), &fakeExpiryNotifier{})

	_, err := svc.Scan(context.Background(), "user-1", []byte{1}, "image/jpeg")
	require.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestScanEmptyImage(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestScanService(gen, newFakeInventoryRepo(), &fakeExpiryNotifier{})

	_, err := svc.Scan(context.Background(), "user-1", nil, "image/jpeg")
	require.ErrorIs(t, err, ErrEmptyImage)
	assert.Equal(t, 0, gen.visionCalls)
}

func TestConfirmAddsItems(t *testing.T) {
	inv := newFakeInventoryRepo()
	notifier := &fakeExpiryNotifier{}
	svc := newTestScanService(&fakeGenerator{}, inv, notifier)

	added, err := svc.Confirm(context.Background(), "user-1", []models.AddFoodItemRequest{
		{Name: "Milk", Quantity: 1, ExpiryDate: testNow + millisPerDay, Location: models.LocationFridge},
		{Name: "Rice", Quantity: 2, ExpiryDate: testNow + 90*millisPerDay, Location: models.LocationPantry},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotEmpty(t, added[0].ID)

	stored, err := inv.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	// Only the item inside the expiring-soon window triggers an alert.
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, "Milk", notifier.notified[0].Name)
}
