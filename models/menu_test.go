package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, 50.0, MarginPercent(10, 5))
	assert.Equal(t, 100.0, MarginPercent(10, 0))
	assert.Equal(t, 0.0, MarginPercent(0, 5), "zero revenue must not divide")
	assert.InDelta(t, 66.666, MarginPercent(15, 5), 0.001)
	assert.Equal(t, -100.0, MarginPercent(5, 10))
}

func TestInventoryIsLowStock(t *testing.T) {
	assert.True(t, InventoryItem{Quantity: 2, Threshold: 5}.IsLowStock())
	assert.True(t, InventoryItem{Quantity: 5, Threshold: 5}.IsLowStock())
	assert.False(t, InventoryItem{Quantity: 6, Threshold: 5}.IsLowStock())
}
