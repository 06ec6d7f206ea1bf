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

const shoppingListCollection = "shopping_list"

// firestoreShoppingListRepository implements the ShoppingListRepository interface using Firestore.
type firestoreShoppingListRepository struct {
	client *firestore.Client
}

// NewFirestoreShoppingListRepository creates a new instance of firestoreShoppingListRepository.
func NewFirestoreShoppingListRepository(client *firestore.Client) ShoppingListRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ShoppingListRepository.")
	}
	return &firestoreShoppingListRepository{client: client}
}

func (r *firestoreShoppingListRepository) entries(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(shoppingListCollection)
}

// ordered returns the list query newest-first, the order the clients display.
func (r *firestoreShoppingListRepository) ordered(userID string) firestore.Query {
	return r.entries(userID).OrderBy("addedAt", firestore.Desc)
}

// List retrieves the full shopping list for a user, newest entries first.
func (r *firestoreShoppingListRepository) List(ctx context.Context, userID string) ([]models.ShoppingListItem, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for List operation")
	}
	iter := r.ordered(userID).Documents(ctx)
	defer iter.Stop()

	var items []models.ShoppingListItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate shopping list for user '%s': %w", userID, err)
		}

		var item models.ShoppingListItem
		if err := doc.DataTo(&item); err != nil {
			log.Printf("Error decoding shopping item (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}
	return items, nil
}

// Add creates a new shopping-list document with an auto-generated ID.
func (r *firestoreShoppingListRepository) Add(ctx context.Context, userID string, item *models.ShoppingListItem) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Add operation")
	}
	docRef := r.entries(userID).NewDoc()
	item.ID = docRef.ID

	if _, err := docRef.Create(ctx, item); err != nil {
		return "", fmt.Errorf("failed to add shopping item for user '%s': %w", userID, err)
	}
	return docRef.ID, nil
}

// Set overwrites an existing shopping-list document by its ID.
func (r *firestoreShoppingListRepository) Set(ctx context.Context, userID string, item *models.ShoppingListItem) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Set operation")
	}
	if item.ID == "" {
		return errors.New("item ID cannot be empty for Set operation")
	}
	if _, err := r.entries(userID).Doc(item.ID).Set(ctx, item); err != nil {
		return fmt.Errorf("failed to set shopping item '%s' for user '%s': %w", item.ID, userID, err)
	}
	return nil
}

// Delete removes a shopping-list document.
func (r *firestoreShoppingListRepository) Delete(ctx context.Context, userID, itemID string) error {
	if userID == "" || itemID == "" {
		return errors.New("userID and itemID cannot be empty for Delete operation")
	}
	if _, err := r.entries(userID).Doc(itemID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("shopping item '%s' not found for deletion: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete shopping item '%s' for user '%s': %w", itemID, userID, err)
	}
	return nil
}

// SetPurchased updates only the isPurchased field of an entry.
func (r *firestoreShoppingListRepository) SetPurchased(ctx context.Context, userID, itemID string, purchased bool) error {
	if userID == "" || itemID == "" {
		return errors.New("userID and itemID cannot be empty for SetPurchased operation")
	}
	_, err := r.entries(userID).Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "isPurchased", Value: purchased},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("shopping item '%s' not found: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("failed to update isPurchased on item '%s' for user '%s': %w", itemID, userID, err)
	}
	return nil
}

// Watch subscribes to the user's shopping list and delivers a fresh full
// snapshot on every change until ctx is canceled.
func (r *firestoreShoppingListRepository) Watch(ctx context.Context, userID string) (<-chan []models.ShoppingListItem, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Watch operation")
	}
	snapIter := r.ordered(userID).Snapshots(ctx)
	ch := make(chan []models.ShoppingListItem, 1)

	go func() {
		defer close(ch)
		defer snapIter.Stop()
		for {
			snap, err := snapIter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("Shopping list watch for user '%s' ended with error: %v", userID, err)
				}
				return
			}

			items := make([]models.ShoppingListItem, 0)
			docIter := snap.Documents
			for {
				doc, err := docIter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("Error iterating shopping snapshot for user '%s': %v", userID, err)
					break
				}
				var item models.ShoppingListItem
				if err := doc.DataTo(&item); err != nil {
					log.Printf("Error decoding shopping item (ID: %s) in snapshot for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
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
