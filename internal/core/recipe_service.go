package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// Custom errors for the RecipeService
var (
	ErrNoIngredients    = errors.New("inventory is empty, nothing to cook with")
	ErrNoExpiringItems  = errors.New("no items expiring soon")
	ErrRecipeNotFound   = errors.New("saved recipe not found")
	ErrRecipeGeneration = errors.New("recipe generation failed")
)

const recipePromptTemplate = `I have the following ingredients in my kitchen: %s.
My cooking preferences and restrictions are:
- Preferred Cuisine: %s
- Spice Level: %s
- Preferred Cooking Time: %s
- Food Preference: %s (STRICTLY FOLLOW THIS. If Vegan/Vegetarian, NO meat/animal products.)
- Diet Restrictions: %s (STRICTLY FOLLOW THESE)

Please suggest 3-4 distinct types of recipes (e.g., Breakfast, Lunch, Dinner, Snack) that I can make using these ingredients and matching my preferences where possible.

Return ONLY a valid JSON array of objects. Do not include markdown formatting.
Each object should have the following fields:
- "title": String
- "type": String (e.g., Breakfast)
- "description": String
- "missingIngredients": List of Strings
- "ingredients": List of Strings (Full list of ingredients with quantities)
- "instructions": List of Strings (Step-by-step cooking instructions)
- "cookingTime": String (e.g., "25 minutes")
- "difficulty": String (Easy, Medium, or Hard)
- "youtubeQuery": String (A specific search query to find a video for this recipe on YouTube)
- "youtubeVideoId": String (A valid YouTube video ID for a tutorial on this recipe, if known. If unknown, leave empty)`

const wasteSaverPromptTemplate = `I have these ingredients expiring soon: %s.
My dietary requirements are:
- Food Preference: %s (STRICTLY FOLLOW THIS)
- Diet Restrictions: %s (STRICTLY FOLLOW THESE)

Suggest ONE recipe to use as many of them as possible while strictly adhering to my dietary requirements.

Return ONLY a valid JSON object (NOT an array). Do not include markdown formatting.
The object should have:
- "title": String
- "type": String
- "description": String
- "missingIngredients": List of Strings
- "ingredients": List of Strings
- "instructions": List of Strings
- "cookingTime": String
- "difficulty": String
- "servingSize": String
- "youtubeQuery": String
- "youtubeVideoId": String`

// recipeService implements the RecipeService interface.
type recipeService struct {
	inventoryRepo db.InventoryRepository
	profileRepo   db.ProfileRepository
	recipeRepo    db.SavedRecipeRepository
	generator     ai.Generator
	now           func() int64
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(
	ir db.InventoryRepository,
	pr db.ProfileRepository,
	rr db.SavedRecipeRepository,
	gen ai.Generator,
) RecipeService {
	return &recipeService{
		inventoryRepo: ir,
		profileRepo:   pr,
		recipeRepo:    rr,
		generator:     gen,
		now:           func() int64 { return time.Now().UnixMilli() },
	}
}

// spiceDescriptor buckets the 0..1 spice slider into the descriptor the
// prompt uses. Thresholds follow the settings screen: above 0.7 is High,
// above 0.3 is Medium, the rest is Low.
func spiceDescriptor(level float64) string {
	switch {
	case level > 0.7:
		return "High"
	case level > 0.3:
		return "Medium"
	default:
		return "Low"
	}
}

// preferences resolves the profile-derived prompt inputs, falling back to
// permissive defaults when no profile document exists yet.
func (s *recipeService) preferences(ctx context.Context, userID string) (cuisine, spice, cookingTime, foodPref, restrictions string, err error) {
	cuisine, spice, cookingTime, foodPref, restrictions = "Any", spiceDescriptor(0.5), "Any", "Any", "None"

	profile, perr := s.profileRepo.Get(ctx, userID)
	if perr != nil {
		if errors.Is(perr, db.ErrNotFound) {
			return cuisine, spice, cookingTime, foodPref, restrictions, nil
		}
		return "", "", "", "", "", fmt.Errorf("failed to load profile for user '%s': %w", userID, perr)
	}

	if profile.PreferredCuisine != "" {
		cuisine = profile.PreferredCuisine
	}
	spice = spiceDescriptor(profile.SpiceLevel)
	if profile.CookingTime != "" {
		cookingTime = profile.CookingTime
	}
	if profile.FoodPreference != "" {
		foodPref = profile.FoodPreference
	}
	if len(profile.DietRestrictions) > 0 {
		restrictions = strings.Join(profile.DietRestrictions, ", ")
	}
	return cuisine, spice, cookingTime, foodPref, restrictions, nil
}

// Generate builds recipe suggestions from the current inventory snapshot and
// the user's preferences.
func (s *recipeService) Generate(ctx context.Context, userID string) ([]models.Recipe, error) {
	if s.inventoryRepo == nil || s.profileRepo == nil || s.generator == nil {
		return nil, errors.New("recipeService: component not initialized")
	}

	items, err := s.inventoryRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for user '%s': %w", userID, err)
	}
	if len(items) == 0 {
		// Short-circuit: an empty pantry never reaches the model.
		return nil, ErrNoIngredients
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	cuisine, spice, cookingTime, foodPref, restrictions, err := s.preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(recipePromptTemplate,
		strings.Join(names, ", "), cuisine, spice, cookingTime, foodPref, restrictions)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecipeGeneration, err)
	}

	recipes, err := parseRecipeArray(raw)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GenerateWasteSaver requests a single recipe scoped to items expiring
// within the next three days.
func (s *recipeService) GenerateWasteSaver(ctx context.Context, userID string) (*models.Recipe, []string, error) {
	if s.inventoryRepo == nil || s.profileRepo == nil || s.generator == nil {
		return nil, nil, errors.New("recipeService: component not initialized")
	}

	items, err := s.inventoryRepo.List(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list inventory for user '%s': %w", userID, err)
	}

	now := s.now()
	var expiring []string
	for _, item := range items {
		if IsExpiringSoon(item.ExpiryDate, now) {
			expiring = append(expiring, item.Name)
		}
	}
	if len(expiring) == 0 {
		return nil, nil, ErrNoExpiringItems
	}

	_, _, _, foodPref, restrictions, err := s.preferences(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	prompt := fmt.Sprintf(wasteSaverPromptTemplate, strings.Join(expiring, ", "), foodPref, restrictions)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRecipeGeneration, err)
	}

	recipe, err := parseRecipeObject(raw)
	if err != nil {
		return nil, nil, err
	}
	return recipe, expiring, nil
}

// parseRecipeArray is the typed boundary around the model's free-form text:
// cleaned of code fences, it must decode as a JSON array of recipes.
func parseRecipeArray(raw string) ([]models.Recipe, error) {
	cleaned := ai.CleanJSONResponse(raw)
	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(cleaned), &recipes); err != nil {
		return nil, fmt.Errorf("%w: expected recipe array: %v", ai.ErrMalformedResponse, err)
	}
	return recipes, nil
}

// parseRecipeObject decodes a single recipe object (the waste-saver shape).
func parseRecipeObject(raw string) (*models.Recipe, error) {
	cleaned := ai.CleanJSONResponse(raw)
	var recipe models.Recipe
	if err := json.Unmarshal([]byte(cleaned), &recipe); err != nil {
		return nil, fmt.Errorf("%w: expected recipe object: %v", ai.ErrMalformedResponse, err)
	}
	return &recipe, nil
}

// ListSaved returns the user's saved recipes, newest first.
func (s *recipeService) ListSaved(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	if s.recipeRepo == nil {
		return nil, errors.New("recipeService: recipeRepo not initialized")
	}
	recipes, err := s.recipeRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes for user '%s': %w", userID, err)
	}
	return recipes, nil
}

// Save copies a generated recipe into persistent storage.
func (s *recipeService) Save(ctx context.Context, userID string, recipe models.Recipe) (*models.SavedRecipe, error) {
	if s.recipeRepo == nil {
		return nil, errors.New("recipeService: recipeRepo not initialized")
	}
	saved := models.NewSavedRecipe(userID, recipe, s.now())
	if _, err := s.recipeRepo.Save(ctx, userID, saved); err != nil {
		return nil, fmt.Errorf("failed to save recipe for user '%s': %w", userID, err)
	}
	return saved, nil
}

// DeleteSaved removes a saved recipe.
func (s *recipeService) DeleteSaved(ctx context.Context, userID, recipeID string) error {
	if s.recipeRepo == nil {
		return errors.New("recipeService: recipeRepo not initialized")
	}
	if err := s.recipeRepo.Delete(ctx, userID, recipeID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: recipe '%s'", ErrRecipeNotFound, recipeID)
		}
		return fmt.Errorf("failed to delete saved recipe '%s' for user '%s': %w", recipeID, userID, err)
	}
	return nil
}
