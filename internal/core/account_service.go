package core

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// Custom errors for the AccountService
var (
	ErrUserNotFound = errors.New("user not found")
)

// identityClient is the subset of the identity provider's admin client the
// account service needs.
type identityClient interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	EmailVerificationLink(ctx context.Context, email string) (string, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	auth        identityClient
	profileRepo db.ProfileRepository
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(authClient *auth.Client, pr db.ProfileRepository) AccountService {
	return &accountService{
		auth:        authClient,
		profileRepo: pr,
	}
}

// EnsureProfile retrieves the settings document, creating it with defaults
// on first contact. The boolean reports whether a new document was created.
func (s *accountService) EnsureProfile(ctx context.Context, userID, displayName string) (*models.UserProfile, bool, error) {
	if s.profileRepo == nil {
		return nil, false, errors.New("accountService: profileRepo not initialized")
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to load profile for user '%s': %w", userID, err)
	}

	profile = models.DefaultUserProfile(displayName)
	if err := s.profileRepo.Set(ctx, userID, profile); err != nil {
		return nil, false, fmt.Errorf("failed to create profile for user '%s': %w", userID, err)
	}
	return profile, true, nil
}

// VerificationLink generates an email-verification link for the user's
// registered address. The link is returned to the caller rather than
// mailed; delivery is the client's concern.
func (s *accountService) VerificationLink(ctx context.Context, userID string) (string, error) {
	if s.auth == nil {
		return "", errors.New("accountService: auth client not initialized")
	}

	record, err := s.auth.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: '%s'", ErrUserNotFound, userID)
	}
	if record.Email == "" {
		return "", fmt.Errorf("user '%s' has no email address", userID)
	}

	link, err := s.auth.EmailVerificationLink(ctx, record.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification link for user '%s': %w", userID, err)
	}
	return link, nil
}

// PasswordResetLink generates a password-reset link for the address.
func (s *accountService) PasswordResetLink(ctx context.Context, email string) (string, error) {
	if s.auth == nil {
		return "", errors.New("accountService: auth client not initialized")
	}

	link, err := s.auth.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate password reset link: %w", err)
	}
	return link, nil
}

// ChangePassword sets a new password on the account.
func (s *accountService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if s.auth == nil {
		return errors.New("accountService: auth client not initialized")
	}

	update := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := s.auth.UpdateUser(ctx, userID, update); err != nil {
		return fmt.Errorf("failed to change password for user '%s': %w", userID, err)
	}
	return nil
}

// Providers lists the identity providers linked to the account, e.g.
// "password" or "google.com".
func (s *accountService) Providers(ctx context.Context, userID string) ([]string, error) {
	if s.auth == nil {
		return nil, errors.New("accountService: auth client not initialized")
	}

	record, err := s.auth.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, userID)
	}

	providers := make([]string, 0, len(record.ProviderUserInfo))
	for _, info := range record.ProviderUserInfo {
		providers = append(providers, info.ProviderID)
	}
	return providers, nil
}

// DeleteAccount removes the user's document tree, then the auth user. If
// the data delete fails the auth user is left intact so the call can be
// retried.
func (s *accountService) DeleteAccount(ctx context.Context, userID string) error {
	if s.auth == nil || s.profileRepo == nil {
		return errors.New("accountService: component not initialized")
	}

	if err := s.profileRepo.DeleteUserData(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete data for user '%s': %w", userID, err)
	}
	if err := s.auth.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete auth user '%s': %w", userID, err)
	}
	return nil
}
