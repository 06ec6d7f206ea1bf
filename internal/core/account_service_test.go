package core

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartkitch-backend-go/internal/models"
)

// fakeIdentityClient is a scripted identityClient for tests.
type fakeIdentityClient struct {
	record      *auth.UserRecord
	getErr      error
	deletedUIDs []string
	updatedUIDs []string
}

func (f *fakeIdentityClient) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.record, nil
}

func (f *fakeIdentityClient) UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error) {
	f.updatedUIDs = append(f.updatedUIDs, uid)
	return f.record, nil
}

func (f *fakeIdentityClient) DeleteUser(ctx context.Context, uid string) error {
	f.deletedUIDs = append(f.deletedUIDs, uid)
	return nil
}

func (f *fakeIdentityClient) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	return "https://example.com/verify?email=" + email, nil
}

func (f *fakeIdentityClient) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return "https://example.com/reset?email=" + email, nil
}

func newTestAccountService(idc identityClient, prof *fakeProfileRepo) *accountService {
	return &accountService{auth: idc, profileRepo: prof}
}

func TestEnsureProfileCreatesDefaults(t *testing.T) {
	prof := newFakeProfileRepo(nil)
	svc := newTestAccountService(&fakeIdentityClient{}, prof)

	profile, created, err := svc.EnsureProfile(context.Background(), "user-1", "Alex")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Alex", profile.Name)
	assert.Equal(t, "Italian", profile.PreferredCuisine)
	assert.Equal(t, 0.5, profile.SpiceLevel)
	assert.True(t, profile.ExpiryAlerts)
	assert.True(t, profile.AISuggestions)
	assert.False(t, profile.AutoRemoveExpired)
}

func TestEnsureProfileExisting(t *testing.T) {
	prof := newFakeProfileRepo(&models.UserProfile{Name: "Sam", PreferredCuisine: "Thai"})
	svc := newTestAccountService(&fakeIdentityClient{}, prof)

	profile, created, err := svc.EnsureProfile(context.Background(), "user-1", "Ignored")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Sam", profile.Name)
	assert.Equal(t, "Thai", profile.PreferredCuisine)
}

func TestVerificationLink(t *testing.T) {
	idc := &fakeIdentityClient{record: &auth.UserRecord{
		UserInfo: &auth.UserInfo{Email: "user@example.com"},
	}}
	svc := newTestAccountService(idc, newFakeProfileRepo(nil))

	link, err := svc.VerificationLink(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, link, "user@example.com")
}

func TestVerificationLinkUnknownUser(t *testing.T) {
	idc := &fakeIdentityClient{getErr: errors.New("no such user")}
	svc := newTestAccountService(idc, newFakeProfileRepo(nil))

	_, err := svc.VerificationLink(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestProviders(t *testing.T) {
	idc := &fakeIdentityClient{record: &auth.UserRecord{
		UserInfo: &auth.UserInfo{Email: "user@example.com"},
		ProviderUserInfo: []*auth.UserInfo{
			{ProviderID: "password"},
			{ProviderID: "google.com"},
		},
	}}
	svc := newTestAccountService(idc, newFakeProfileRepo(nil))

	providers, err := svc.Providers(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "google.com"}, providers)
}

func TestDeleteAccountRemovesDataFirst(t *testing.T) {
	idc := &fakeIdentityClient{}
	prof := newFakeProfileRepo(&models.UserProfile{Name: "Sam"})
	svc := newTestAccountService(idc, prof)

	require.NoError(t, svc.DeleteAccount(context.Background(), "user-1"))
	assert.True(t, prof.deletedData)
	assert.Equal(t, []string{"user-1"}, idc.deletedUIDs)
}

func TestChangePassword(t *testing.T) {
	idc := &fakeIdentityClient{}
	svc := newTestAccountService(idc, newFakeProfileRepo(nil))

	require.NoError(t, svc.ChangePassword(context.Background(), "user-1", "new-password"))
	assert.Equal(t, []string{"user-1"}, idc.updatedUIDs)
}
