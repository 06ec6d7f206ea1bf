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
	profileCollection = "profile"
	profileDocumentID = "info"
	savedRecipesColl  = "saved_recipes"
)

// ErrNotFound is a common error for when a document is not found in Firestore.
// It is shared by all repositories in this package.
var ErrNotFound = errors.New("document not found")

// firestoreProfileRepository implements the ProfileRepository interface using Firestore.
// The profile is a singleton document at users/{uid}/profile/info.
type firestoreProfileRepository struct {
	client *firestore.Client
}

// NewFirestoreProfileRepository creates a new instance of firestoreProfileRepository.
func NewFirestoreProfileRepository(client *firestore.Client) ProfileRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProfileRepository.")
	}
	return &firestoreProfileRepository{client: client}
}

func (r *firestoreProfileRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(profileCollection).Doc(profileDocumentID)
}

// Get retrieves the user's settings document.
func (r *firestoreProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Get operation")
	}
	docSnap, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}

	var profile models.UserProfile
	if err := docSnap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile for user '%s': %w", userID, err)
	}
	profile.ID = docSnap.Ref.ID
	return &profile, nil
}

// Set overwrites the user's settings document.
func (r *firestoreProfileRepository) Set(ctx context.Context, userID string, profile *models.UserProfile) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Set operation")
	}
	if _, err := r.doc(userID).Set(ctx, profile); err != nil {
		return fmt.Errorf("failed to set profile for user '%s': %w", userID, err)
	}
	return nil
}

// SetDeviceToken updates only the deviceToken field of the settings document.
func (r *firestoreProfileRepository) SetDeviceToken(ctx context.Context, userID, token string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for SetDeviceToken operation")
	}
	_, err := r.doc(userID).Update(ctx, []firestore.Update{
		{Path: "deviceToken", Value: token},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to update device token for user '%s': %w", userID, err)
	}
	return nil
}

// Watch subscribes to the settings document and delivers the current profile
// on every change. While the document does not exist yet, nil is delivered.
// The subscription ends when ctx is canceled.
func (r *firestoreProfileRepository) Watch(ctx context.Context, userID string) (<-chan *models.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Watch operation")
	}
	snapIter := r.doc(userID).Snapshots(ctx)
	ch := make(chan *models.UserProfile, 1)

	go func() {
		defer close(ch)
		defer snapIter.Stop()
		for {
			snap, err := snapIter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("Profile watch for user '%s' ended with error: %v", userID, err)
				}
				return
			}

			var profile *models.UserProfile
			if snap.Exists() {
				var p models.UserProfile
				if err := snap.DataTo(&p); err != nil {
					log.Printf("Error decoding profile snapshot for user '%s': %v", userID, err)
					continue
				}
				p.ID = snap.Ref.ID
				profile = &p
			}

			select {
			case ch <- profile:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// DeleteUserData removes every document under the user's tree: inventory,
// shopping list, saved recipes and the settings document. Used when an
// account is deleted. Deletions are independent writes; a failure part way
// through leaves the remainder in place.
func (r *firestoreProfileRepository) DeleteUserData(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for DeleteUserData operation")
	}

	userDoc := r.client.Collection(usersCollection).Doc(userID)
	for _, coll := range []string{inventoryCollection, shoppingListCollection, savedRecipesColl, profileCollection} {
		iter := userDoc.Collection(coll).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return fmt.Errorf("failed to iterate '%s' for user '%s' during account deletion: %w", coll, userID, err)
			}
			if _, err := doc.Ref.Delete(ctx); err != nil {
				iter.Stop()
				return fmt.Errorf("failed to delete document '%s/%s' for user '%s': %w", coll, doc.Ref.ID, userID, err)
			}
		}
		iter.Stop()
	}

	if _, err := userDoc.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user document for '%s': %w", userID, err)
	}
	return nil
}
