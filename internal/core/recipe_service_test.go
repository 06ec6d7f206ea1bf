package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/models"
)

func newTestRecipeService(inv *fakeInventoryRepo, prof *fakeProfileRepo, rec *fakeRecipeRepo, gen *fakeGenerator) *recipeService {
	svc := NewRecipeService(inv, prof, rec, gen).(*recipeService)
	svc.now = func() int64 { return testNow }
	return svc
}

func TestSpiceDescriptor(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{0.0, "Low"},
		{0.3, "Low"},
		{0.31, "Medium"},
		{0.5, "Medium"},
		{0.7, "Medium"},
		{0.71, "High"},
		{1.0, "High"},
	}
	for _, tt := range tests {
		if got := spiceDescriptor(tt.level); got != tt.want {
			t.Errorf("spiceDescriptor(%g) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestGenerateEmptyInventory(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestRecipeService(newFakeInventoryRepo(), newFakeProfileRepo(nil), &fakeRecipeRepo{}, gen)

	_, err := svc.Generate(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrNoIngredients)
	assert.Equal(t, 0, gen.textCalls, "an empty pantry must never reach the model")
}

func TestGenerateParsesFencedResponse(t *testing.T) {
	inv := newFakeInventoryRepo(
		models.FoodItem{ID: "i1", Name: "Tomato", Quantity: 4, ExpiryDate: testNow + 10*millisPerDay},
		models.FoodItem{ID: "i2", Name: "Pasta", Quantity: 1, ExpiryDate: testNow + 100*millisPerDay},
	)
	prof := newFakeProfileRepo(&models.UserProfile{
		PreferredCuisine: "Italian",
		SpiceLevel:       0.8,
		FoodPreference:   models.PreferenceVegetarian,
		DietRestrictions: []string{"No nuts"},
	})
	gen := &fakeGenerator{textResponse: "```json\n[{\"title\": \"Tomato Pasta\", \"type\": \"Dinner\", \"difficulty\": \"Easy\"}]\n```"}
	svc := newTestRecipeService(inv, prof, &fakeRecipeRepo{}, gen)

	recipes, err := svc.Generate(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Pasta", recipes[0].Title)

	assert.Contains(t, gen.lastPrompt, "Tomato, Pasta")
	assert.Contains(t, gen.lastPrompt, "Italian")
	assert.Contains(t, gen.lastPrompt, "High")
	assert.Contains(t, gen.lastPrompt, models.PreferenceVegetarian)
	assert.Contains(t, gen.lastPrompt, "No nuts")
}

func TestGenerateMalformedResponse(t *testing.T) {
	inv := newFakeInventoryRepo(models.FoodItem{ID: "i1", Name: "Rice", Quantity: 1, ExpiryDate: testNow + millisPerDay})
	gen := &fakeGenerator{textResponse: "Sorry, I cannot help with that."}
	svc := newTestRecipeService(inv, newFakeProfileRepo(nil), &fakeRecipeRepo{}, gen)

	_, err := svc.Generate(context.Background(), "user-1")
	require.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestGenerateModelFailure(t *testing.T) {
	inv := newFakeInventoryRepo(models.FoodItem{ID: "i1", Name: "Rice", Quantity: 1, ExpiryDate: testNow + millisPerDay})
	gen := &fakeGenerator{textErr: errors.New("quota exceeded")}
	svc := newTestRecipeService(inv, newFakeProfileRepo(nil), &fakeRecipeRepo{}, gen)

	_, err := svc.Generate(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrRecipeGeneration)
}

func TestGenerateWasteSaver(t *testing.T) {
	inv := newFakeInventoryRepo(
		models.FoodItem{ID: "i1", Name: "Spinach", Quantity: 1, ExpiryDate: testNow + millisPerDay},
		models.FoodItem{ID: "i2", Name: "Cream", Quantity: 1, ExpiryDate: testNow + 2*millisPerDay},
		models.FoodItem{ID: "i3", Name: "Flour", Quantity: 1, ExpiryDate: testNow + 60*millisPerDay},
	)
	gen := &fakeGenerator{textResponse: `{"title": "Creamed Spinach", "servingSize": "2 servings"}`}
	svc := newTestRecipeService(inv, newFakeProfileRepo(nil), &fakeRecipeRepo{}, gen)

	recipe, expiring, err := svc.GenerateWasteSaver(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Creamed Spinach", recipe.Title)
	assert.Equal(t, []string{"Spinach", "Cream"}, expiring)
	assert.Contains(t, gen.lastPrompt, "Spinach, Cream")
	assert.NotContains(t, gen.lastPrompt, "Flour")
}

func TestGenerateWasteSaverNoExpiringItems(t *testing.T) {
	inv := newFakeInventoryRepo(
		models.FoodItem{ID: "i1", Name: "Flour", Quantity: 1, ExpiryDate: testNow + 60*millisPerDay},
	)
	gen := &fakeGenerator{}
	svc := newTestRecipeService(inv, newFakeProfileRepo(nil), &fakeRecipeRepo{}, gen)

	_, _, err := svc.GenerateWasteSaver(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrNoExpiringItems)
	assert.Equal(t, 0, gen.textCalls)
}

func TestSaveAndDeleteRecipe(t *testing.T) {
	rec := &fakeRecipeRepo{}
	svc := newTestRecipeService(newFakeInventoryRepo(), newFakeProfileRepo(nil), rec, &fakeGenerator{})

	saved, err := svc.Save(context.Background(), "user-1", models.Recipe{Title: "Pancakes", Type: "Breakfast"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, testNow, saved.Timestamp)

	require.NoError(t, svc.DeleteSaved(context.Background(), "user-1", saved.ID))

	err = svc.DeleteSaved(context.Background(), "user-1", saved.ID)
	require.ErrorIs(t, err, ErrRecipeNotFound)
}
