package core

import (
	"context"
	"errors"
	"fmt"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// Custom errors for the ProfileService
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// profileService implements the ProfileService interface.
type profileService struct {
	profileRepo db.ProfileRepository
	imageStore  db.ImageStore
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(pr db.ProfileRepository, store db.ImageStore) ProfileService {
	return &profileService{
		profileRepo: pr,
		imageStore:  store,
	}
}

// Get retrieves the user's settings document.
func (s *profileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	if s.profileRepo == nil {
		return nil, errors.New("profileService: profileRepo not initialized")
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user '%s'", ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}
	return profile, nil
}

// Save overwrites the settings document with the request payload. Fields
// managed outside the settings form (profile photo, device token) are
// carried over from the stored document so a save does not clear them.
func (s *profileService) Save(ctx context.Context, userID string, req models.SaveProfileRequest) (*models.UserProfile, error) {
	if s.profileRepo == nil {
		return nil, errors.New("profileService: profileRepo not initialized")
	}

	var imageURL, deviceToken string
	if existing, err := s.profileRepo.Get(ctx, userID); err == nil {
		imageURL = existing.ProfileImageURL
		deviceToken = existing.DeviceToken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to read existing profile for user '%s': %w", userID, err)
	}

	profile := &models.UserProfile{
		Name:                  req.Name,
		Age:                   req.Age,
		FoodPreference:        req.FoodPreference,
		DietRestrictions:      req.DietRestrictions,
		ProfileImageURL:       imageURL,
		PreferredCuisine:      req.PreferredCuisine,
		SpiceLevel:            req.SpiceLevel,
		CookingTime:           req.CookingTime,
		VoiceAssistantEnabled: req.VoiceAssistantEnabled,
		AutoRemoveExpired:     req.AutoRemoveExpired,
		AppLanguage:           req.AppLanguage,
		Region:                req.Region,
		ExpiryAlerts:          req.ExpiryAlerts,
		AISuggestions:         req.AISuggestions,
		DeviceToken:           deviceToken,
	}
	if err := s.profileRepo.Set(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile for user '%s': %w", userID, err)
	}
	return profile, nil
}

// UploadPhoto stores the profile photo, persists its URL and returns it.
func (s *profileService) UploadPhoto(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if s.imageStore == nil || s.profileRepo == nil {
		return "", errors.New("profileService: component not initialized")
	}

	url, err := s.imageStore.UploadProfileImage(ctx, userID, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo for user '%s': %w", userID, err)
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", fmt.Errorf("%w: user '%s'", ErrProfileNotFound, userID)
		}
		return "", fmt.Errorf("failed to read profile for user '%s': %w", userID, err)
	}
	profile.ProfileImageURL = url
	if err := s.profileRepo.Set(ctx, userID, profile); err != nil {
		return "", fmt.Errorf("failed to persist photo URL for user '%s': %w", userID, err)
	}
	return url, nil
}

// RegisterDeviceToken stores the FCM registration token expiry alerts go to.
func (s *profileService) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	if s.profileRepo == nil {
		return errors.New("profileService: profileRepo not initialized")
	}
	if err := s.profileRepo.SetDeviceToken(ctx, userID, token); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user '%s'", ErrProfileNotFound, userID)
		}
		return fmt.Errorf("failed to register device token for user '%s': %w", userID, err)
	}
	return nil
}
