package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smartkitch-backend-go/internal/models"
)

// firestoreSavedRecipeRepository implements the SavedRecipeRepository interface using Firestore.
type firestoreSavedRecipeRepository struct {
	client *firestore.Client
}

// NewFirestoreSavedRecipeRepository creates a new instance of firestoreSavedRecipeRepository.
func NewFirestoreSavedRecipeRepository(client *firestore.Client) SavedRecipeRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SavedRecipeRepository.")
	}
	return &firestoreSavedRecipeRepository{client: client}
}

func (r *firestoreSavedRecipeRepository) recipes(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(savedRecipesColl)
}

// List retrieves the user's saved recipes, newest first.
func (r *firestoreSavedRecipeRepository) List(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for List operation")
	}
	iter := r.recipes(userID).OrderBy("timestamp", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var recipes []models.SavedRecipe
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate saved recipes for user '%s': %w", userID, err)
		}

		var recipe models.SavedRecipe
		if err := doc.DataTo(&recipe); err != nil {
			log.Printf("Error decoding saved recipe (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		recipe.ID = doc.Ref.ID
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Save stores a recipe under a new document ID. The ID and owner are set on
// the model before the write, matching what readers expect to find.
func (r *firestoreSavedRecipeRepository) Save(ctx context.Context, userID string, recipe *models.SavedRecipe) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Save operation")
	}
	docRef := r.recipes(userID).NewDoc()
	recipe.ID = docRef.ID
	recipe.UserID = userID

	if _, err := docRef.Set(ctx, recipe); err != nil {
		return "", fmt.Errorf("failed to save recipe for user '%s': %w", userID, err)
	}
	return docRef.ID, nil
}

// Delete removes a saved recipe.
func (r *firestoreSavedRecipeRepository) Delete(ctx context.Context, userID, recipeID string) error {
	if userID == "" || recipeID == "" {
		return errors.New("userID and recipeID cannot be empty for Delete operation")
	}
	if _, err := r.recipes(userID).Doc(recipeID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("saved recipe '%s' not found for deletion: %w", recipeID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete saved recipe '%s' for user '%s': %w", recipeID, userID, err)
	}
	return nil
}
