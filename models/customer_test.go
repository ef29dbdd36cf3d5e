package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		spent float64
		want  Tier
	}{
		{0, TierBronze},
		{499.99, TierBronze},
		{500, TierSilver},
		{1999.99, TierSilver},
		{2000, TierGold},
		{4999.99, TierGold},
		{5000, TierVIP},
		{125000, TierVIP},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.spent), "spent=%.2f", tt.spent)
	}
}

func TestLoyaltyPointsFor(t *testing.T) {
	assert.Equal(t, 21, LoyaltyPointsFor(21.60))
	assert.Equal(t, 0, LoyaltyPointsFor(0.99))
	assert.Equal(t, 100, LoyaltyPointsFor(100.00))
	assert.Equal(t, 0, LoyaltyPointsFor(0))
	assert.Equal(t, 0, LoyaltyPointsFor(-5))
}
