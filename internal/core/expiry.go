package core

import (
	"time"

	"smartkitch-backend-go/internal/models"
)

// ExpiryStatus classifies an item's freshness at a point in time.
type ExpiryStatus int

const (
	ExpiryNormal ExpiryStatus = iota
	ExpiryExpiringSoon
	ExpiryExpired
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// expiringSoonDays is the window, in whole days, within which an item
// counts as expiring soon.
const expiringSoonDays = 3

// lowStockThreshold is the quantity at or below which an item counts as
// low stock.
const lowStockThreshold = 2.0

// ClassifyExpiry returns the freshness status of an expiry timestamp
// (Unix milliseconds) relative to now. Day arithmetic truncates, so an
// item expiring later today still counts as expiring soon (0 days).
func ClassifyExpiry(expiryMillis, nowMillis int64) ExpiryStatus {
	if expiryMillis < nowMillis {
		return ExpiryExpired
	}
	days := (expiryMillis - nowMillis) / millisPerDay
	if days <= expiringSoonDays {
		return ExpiryExpiringSoon
	}
	return ExpiryNormal
}

// IsExpired reports whether the expiry timestamp is in the past.
func IsExpired(expiryMillis, nowMillis int64) bool {
	return expiryMillis < nowMillis
}

// IsExpiringSoon reports whether the expiry timestamp falls within the
// expiring-soon window, i.e. 0 <= days-until-expiry <= 3.
func IsExpiringSoon(expiryMillis, nowMillis int64) bool {
	return ClassifyExpiry(expiryMillis, nowMillis) == ExpiryExpiringSoon
}

// IsLowStock reports whether an item should be flagged as low stock:
// quantity at or below the threshold and not yet expired. The
// low-stock state is never stored; it is recomputed from the snapshot
// on every evaluation.
func IsLowStock(item models.FoodItem, nowMillis int64) bool {
	return item.ExpiryDate >= nowMillis && item.Quantity <= lowStockThreshold
}
