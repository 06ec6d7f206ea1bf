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

const (
	usersCollection     = "users"
	inventoryCollection = "inventory"
)

// firestoreInventoryRepository implements the InventoryRepository interface using Firestore.
type firestoreInventoryRepository struct {
	client *firestore.Client
}

// NewFirestoreInventoryRepository creates a new instance of firestoreInventoryRepository.
func NewFirestoreInventoryRepository(client *firestore.Client) InventoryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for InventoryRepository.")
	}
	return &firestoreInventoryRepository{client: client}
}

// items returns the per-user inventory collection reference.
func (r *firestoreInventoryRepository) items(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(inventoryCollection)
}

// List retrieves the full inventory snapshot for a user.
func (r *firestoreInventoryRepository) List(ctx context.Context, userID string) ([]models.FoodItem, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for List operation")
	}
	iter := r.items(userID).Documents(ctx)
	defer iter.Stop()

	var items []models.FoodItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate inventory for user '%s': %w", userID, err)
		}

		var item models.FoodItem
		if err := doc.DataTo(&item); err != nil {
			// Log and skip a malformed document rather than failing the whole list.
			log.Printf("Error decoding inventory item (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}
	return items, nil
}

// Add creates a new inventory document with an auto-generated ID.
// It sets item.ID with the new document ID before creation.
func (r *firestoreInventoryRepository) Add(ctx context.Context, userID string, item *models.FoodItem) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Add operation")
	}
	docRef := r.items(userID).NewDoc()
	item.ID = docRef.ID

	if _, err := docRef.Create(ctx, item); err != nil {
		return "", fmt.Errorf("failed to add inventory item for user '%s': %w", userID, err)
	}
	return docRef.ID, nil
}

// Set overwrites an existing inventory document by its ID.
func (r *firestoreInventoryRepository) Set(ctx context.Context, userID string, item *models.FoodItem) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Set operation")
	}
	if item.ID == "" {
		return errors.New("item ID cannot be empty for Set operation")
	}
	if _, err := r.items(userID).Doc(item.ID).Set(ctx, item); err != nil {
		return fmt.Errorf("failed to set inventory item '%s' for user '%s': %w", item.ID, userID, err)
	}
	return nil
}

// Delete removes an inventory document.
func (r *firestoreInventoryRepository) Delete(ctx context.Context, userID, itemID string) error {
	if userID == "" || itemID == "" {
		return errors.New("userID and itemID cannot be empty for Delete operation")
	}
	if _, err := r.items(userID).Doc(itemID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("inventory item '%s' not found for deletion: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete inventory item '%s' for user '%s': %w", itemID, userID, err)
	}
	return nil
}

// Watch subscribes to the user's inventory collection and delivers a fresh
// full snapshot on every change. The subscription ends when ctx is canceled,
// at which point the returned channel is closed.
func (r *firestoreInventoryRepository) Watch(ctx context.Context, userID string) (<-chan []models.FoodItem, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Watch operation")
	}
	snapIter := r.items(userID).Snapshots(ctx)
	ch := make(chan []models.FoodItem, 1)

	go func() {
		defer close(ch)
		defer snapIter.Stop()
		for {
			snap, err := snapIter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("Inventory watch for user '%s' ended with error: %v", userID, err)
				}
				return
			}

			items := make([]models.FoodItem, 0)
			docIter := snap.Documents
			for {
				doc, err := docIter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("Error iterating inventory snapshot for user '%s': %v", userID, err)
					break
				}
				var item models.FoodItem
				if err := doc.DataTo(&item); err != nil {
					log.Printf("Error decoding inventory item (ID: %s) in snapshot for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
					continue
				}
				item.ID = doc.Ref.ID
				items = append(items, item)
			}

			select {
			case ch <- items:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
