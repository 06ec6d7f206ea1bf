package core

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/models"
)

// MessageSender is the subset of the push-messaging client the notifier
// needs. *messaging.Client satisfies it.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// expiryNotifier implements the ExpiryNotifier interface over FCM.
type expiryNotifier struct {
	sender        MessageSender
	inventoryRepo db.InventoryRepository
	profileRepo   db.ProfileRepository
	logger        *zap.Logger
	now           func() int64
}

// NewExpiryNotifier creates a new ExpiryNotifier instance.
func NewExpiryNotifier(sender MessageSender, ir db.InventoryRepository, pr db.ProfileRepository, logger *zap.Logger) ExpiryNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &expiryNotifier{
		sender:        sender,
		inventoryRepo: ir,
		profileRepo:   pr,
		logger:        logger,
		now:           func() int64 { return time.Now().UnixMilli() },
	}
}

// deviceToken resolves the user's registered device. An empty return means
// alerts are off or no device is registered; either way nothing is sent.
func (n *expiryNotifier) deviceToken(ctx context.Context, userID string) (string, error) {
	profile, err := n.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load profile for user '%s': %w", userID, err)
	}
	if !profile.ExpiryAlerts || profile.DeviceToken == "" {
		return "", nil
	}
	return profile.DeviceToken, nil
}

// collapseKey derives a stable key from the item ID, so repeated alerts for
// the same item replace each other on the device instead of piling up.
func collapseKey(itemID string) string {
	h := fnv.New32a()
	h.Write([]byte(itemID))
	return fmt.Sprintf("expiry-%d", h.Sum32())
}

func (n *expiryNotifier) send(ctx context.Context, token string, item models.FoodItem, nowMillis int64) error {
	days := (item.ExpiryDate - nowMillis) / millisPerDay
	var body string
	switch {
	case item.ExpiryDate < nowMillis:
		body = fmt.Sprintf("%s has expired.", item.Name)
	case days == 0:
		body = fmt.Sprintf("%s expires today!", item.Name)
	case days == 1:
		body = fmt.Sprintf("%s expires tomorrow.", item.Name)
	default:
		body = fmt.Sprintf("%s expires in %d days.", item.Name, days)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Expiry Alert",
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			CollapseKey: collapseKey(item.ID),
			Priority:    "high",
		},
		Data: map[string]string{
			"type":   "expiry_alert",
			"itemId": item.ID,
		},
	}
	_, err := n.sender.Send(ctx, msg)
	return err
}

// CheckAndNotify sends one alert per item currently expiring soon and
// returns how many were sent.
func (n *expiryNotifier) CheckAndNotify(ctx context.Context, userID string) (int, error) {
	if n.sender == nil || n.inventoryRepo == nil || n.profileRepo == nil {
		return 0, errors.New("expiryNotifier: component not initialized")
	}

	token, err := n.deviceToken(ctx, userID)
	if err != nil {
		return 0, err
	}
	if token == "" {
		return 0, nil
	}

	items, err := n.inventoryRepo.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list inventory for user '%s': %w", userID, err)
	}

	now := n.now()
	sent := 0
	for _, item := range items {
		if !IsExpiringSoon(item.ExpiryDate, now) {
			continue
		}
		if err := n.send(ctx, token, item, now); err != nil {
			n.logger.Error("failed to send expiry alert",
				zap.String("userID", userID),
				zap.String("item", item.Name),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// NotifyItemAdded alerts immediately when a newly added item is already
// expiring soon.
func (n *expiryNotifier) NotifyItemAdded(ctx context.Context, userID string, item models.FoodItem) error {
	if n.sender == nil || n.profileRepo == nil {
		return errors.New("expiryNotifier: component not initialized")
	}

	token, err := n.deviceToken(ctx, userID)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	return n.send(ctx, token, item, n.now())
}
