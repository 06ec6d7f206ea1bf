package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	gcs "cloud.google.com/go/storage"
	firebasestorage "firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
)

// firebaseImageStore implements the ImageStore interface on the app's default
// storage bucket.
type firebaseImageStore struct {
	client     *firebasestorage.Client
	bucketName string
}

// NewFirebaseImageStore creates a new instance of firebaseImageStore.
func NewFirebaseImageStore(client *firebasestorage.Client, bucketName string) ImageStore {
	if client == nil {
		log.Fatal("Firebase Storage client is not initialized for ImageStore.")
	}
	return &firebaseImageStore{client: client, bucketName: bucketName}
}

// UploadProfileImage stores the user's profile photo at a fixed per-user path
// and returns its public download URL. Re-uploads overwrite the previous photo.
func (s *firebaseImageStore) UploadProfileImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for UploadProfileImage operation")
	}
	objectPath := fmt.Sprintf("profile_images/%s/profile.jpg", userID)
	return s.upload(ctx, objectPath, data, contentType)
}

// UploadItemImage stores an item photo under a generated name so multiple
// item photos can coexist per user.
func (s *firebaseImageStore) UploadItemImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for UploadItemImage operation")
	}
	objectPath := fmt.Sprintf("item_images/%s/%s.jpg", userID, uuid.NewString())
	return s.upload(ctx, objectPath, data, contentType)
}

func (s *firebaseImageStore) upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	bucket, err := s.client.Bucket(s.bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to open storage bucket '%s': %w", s.bucketName, err)
	}

	obj := bucket.Object(objectPath)
	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object '%s': %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object '%s': %w", objectPath, err)
	}

	// The clients expect a plain download URL, so the object is made
	// publicly readable after upload.
	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set public read ACL on '%s': %w", objectPath, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectPath), nil
}
