package models

// Recipe is a generated recipe suggestion. Recipes are transient: they
// only reach storage when the user explicitly saves one, at which point
// the fields are copied into a SavedRecipe.
type Recipe struct {
	Title              string   `json:"title"`
	Type               string   `json:"type"` // e.g. "Breakfast", "Dinner"
	Description        string   `json:"description"`
	MissingIngredients []string `json:"missingIngredients"`
	Ingredients        []string `json:"ingredients"`
	Instructions       []string `json:"instructions"`
	CookingTime        string   `json:"cookingTime"`
	Difficulty         string   `json:"difficulty"`
	ServingSize        string   `json:"servingSize,omitempty"`
	Tips               string   `json:"tips,omitempty"`
	YoutubeQuery       string   `json:"youtubeQuery,omitempty"`
	YoutubeVideoID     string   `json:"youtubeVideoId,omitempty"`
}

// SavedRecipe is a recipe the user chose to keep.
type SavedRecipe struct {
	ID                 string   `json:"id" firestore:"-"` // Document ID
	UserID             string   `json:"userId" firestore:"userId"`
	Title              string   `json:"title" firestore:"title"`
	Type               string   `json:"type" firestore:"type"`
	Description        string   `json:"description" firestore:"description"`
	MissingIngredients []string `json:"missingIngredients" firestore:"missingIngredients"`
	Ingredients        []string `json:"ingredients" firestore:"ingredients"`
	Instructions       []string `json:"instructions" firestore:"instructions"`
	CookingTime        string   `json:"cookingTime" firestore:"cookingTime"`
	Difficulty         string   `json:"difficulty" firestore:"difficulty"`
	Timestamp          int64    `json:"timestamp" firestore:"timestamp"` // Unix milliseconds
}

// NewSavedRecipe copies the persisted subset of a generated recipe.
func NewSavedRecipe(userID string, r Recipe, now int64) *SavedRecipe {
	return &SavedRecipe{
		UserID:             userID,
		Title:              r.Title,
		Type:               r.Type,
		Description:        r.Description,
		MissingIngredients: r.MissingIngredients,
		Ingredients:        r.Ingredients,
		Instructions:       r.Instructions,
		CookingTime:        r.CookingTime,
		Difficulty:         r.Difficulty,
		Timestamp:          now,
	}
}
