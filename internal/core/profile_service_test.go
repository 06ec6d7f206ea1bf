package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartkitch-backend-go/internal/models"
)

// fakeImageStore records uploads and returns deterministic URLs.
type fakeImageStore struct {
	profileUploads int
	itemUploads    int
}

func (f *fakeImageStore) UploadProfileImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	f.profileUploads++
	return "https://storage.example.com/profile_images/" + userID + "/profile.jpg", nil
}

func (f *fakeImageStore) UploadItemImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	f.itemUploads++
	return "https://storage.example.com/item_images/" + userID + "/item.jpg", nil
}

func TestProfileSavePreservesManagedFields(t *testing.T) {
	prof := newFakeProfileRepo(&models.UserProfile{
		Name:            "Sam",
		ProfileImageURL: "https://storage.example.com/p.jpg",
		DeviceToken:     "token-1",
	})
	svc := NewProfileService(prof, &fakeImageStore{})

	saved, err := svc.Save(context.Background(), "user-1", models.SaveProfileRequest{
		Name:          "Sam Updated",
		SpiceLevel:    0.9,
		ExpiryAlerts:  true,
		AISuggestions: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam Updated", saved.Name)
	// The settings form never carries these; a save must not clear them.
	assert.Equal(t, "https://storage.example.com/p.jpg", saved.ProfileImageURL)
	assert.Equal(t, "token-1", saved.DeviceToken)
}

func TestProfileGetNotFound(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(nil), &fakeImageStore{})
	_, err := svc.Get(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUploadPhotoPersistsURL(t *testing.T) {
	prof := newFakeProfileRepo(&models.UserProfile{Name: "Sam"})
	store := &fakeImageStore{}
	svc := NewProfileService(prof, store)

	url, err := svc.UploadPhoto(context.Background(), "user-1", []byte{1, 2, 3}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, 1, store.profileUploads)

	stored, err := prof.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, url, stored.ProfileImageURL)
}

func TestRegisterDeviceToken(t *testing.T) {
	prof := newFakeProfileRepo(&models.UserProfile{Name: "Sam"})
	svc := NewProfileService(prof, &fakeImageStore{})

	require.NoError(t, svc.RegisterDeviceToken(context.Background(), "user-1", "token-9"))
	stored, _ := prof.Get(context.Background(), "user-1")
	assert.Equal(t, "token-9", stored.DeviceToken)
}

func TestRegisterDeviceTokenNoProfile(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(nil), &fakeImageStore{})
	err := svc.RegisterDeviceToken(context.Background(), "user-1", "t")
	require.ErrorIs(t, err, ErrProfileNotFound)
}
