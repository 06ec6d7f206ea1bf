package core

import (
	"testing"

	"smartkitch-backend-go/internal/models"
)

const testNow = int64(1_700_000_000_000)

func TestClassifyExpiry(t *testing.T) {
	tests := []struct {
		name   string
		expiry int64
		want   ExpiryStatus
	}{
		{"one millisecond in the past", testNow - 1, ExpiryExpired},
		{"far in the past", testNow - 30*millisPerDay, ExpiryExpired},
		{"exactly now", testNow, ExpiryExpiringSoon},
		{"later today", testNow + millisPerDay/2, ExpiryExpiringSoon},
		{"three days out", testNow + 3*millisPerDay, ExpiryExpiringSoon},
		{"just under four days", testNow + 4*millisPerDay - 1, ExpiryExpiringSoon},
		{"exactly four days", testNow + 4*millisPerDay, ExpiryNormal},
		{"a month out", testNow + 30*millisPerDay, ExpiryNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyExpiry(tt.expiry, testNow); got != tt.want {
				t.Errorf("ClassifyExpiry(%d, %d) = %v, want %v", tt.expiry, testNow, got, tt.want)
			}
		})
	}
}

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name string
		item models.FoodItem
		want bool
	}{
		{
			name: "below threshold and fresh",
			item: models.FoodItem{Quantity: 1, ExpiryDate: testNow + 10*millisPerDay},
			want: true,
		},
		{
			name: "exactly at threshold",
			item: models.FoodItem{Quantity: 2, ExpiryDate: testNow + 10*millisPerDay},
			want: true,
		},
		{
			name: "above threshold",
			item: models.FoodItem{Quantity: 2.5, ExpiryDate: testNow + 10*millisPerDay},
			want: false,
		},
		{
			name: "low quantity but expired",
			item: models.FoodItem{Quantity: 1, ExpiryDate: testNow - 1},
			want: false,
		},
		{
			name: "expiring exactly now still counts",
			item: models.FoodItem{Quantity: 1, ExpiryDate: testNow},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLowStock(tt.item, testNow); got != tt.want {
				t.Errorf("IsLowStock(%+v) = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
}
