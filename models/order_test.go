package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	n := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD-"))

	parts := strings.Split(n, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[1], 14) // yyyymmddhhmmss
	assert.Len(t, parts[2], 4)
}

func TestGenerateTrackingNumberFormat(t *testing.T) {
	n := GenerateTrackingNumber()
	assert.True(t, strings.HasPrefix(n, "TN-"))

	parts := strings.Split(n, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[1], 14)
	assert.Len(t, parts[2], 8)
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateOrderNumber()] = true
	}
	// The random suffix should make same-second collisions rare; 100 draws
	// colliding down to a handful would mean the suffix is broken.
	assert.Greater(t, len(seen), 90)
}

func TestOrderStatusDisplay(t *testing.T) {
	assert.Equal(t, "Новый", OrderStatusDisplay(OrderStatusNew))
	assert.Equal(t, "Доставлен", OrderStatusDisplay(OrderStatusDelivered))
	assert.Equal(t, "unknown", OrderStatusDisplay(OrderStatus("unknown")))
}
