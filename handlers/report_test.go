package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinehall/dinehall/models"
)

func TestAverageOrderValue(t *testing.T) {
	// fixture of N completed orders with known totals
	totals := []float64{21.60, 54.00, 10.80, 27.00}
	var revenue float64
	for _, v := range totals {
		revenue += v
	}

	avg := averageOrderValue(revenue, len(totals))
	assert.Equal(t, 113.40, revenue)
	assert.InDelta(t, 28.35, avg, 1e-9)

	assert.Equal(t, 0.0, averageOrderValue(0, 0), "no orders must not divide")
}

func TestTierDistribution(t *testing.T) {
	spends := []float64{0, 120, 500, 750, 2000, 4999.99, 5000, 80000}

	dist := tierDistribution(spends)
	assert.Equal(t, 2, dist[models.TierBronze])
	assert.Equal(t, 2, dist[models.TierSilver])
	assert.Equal(t, 2, dist[models.TierGold])
	assert.Equal(t, 2, dist[models.TierVIP])

	empty := tierDistribution(nil)
	assert.Equal(t, 0, empty[models.TierBronze])
	assert.Len(t, empty, 4, "all tiers present even when empty")
}

func TestParseDateRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/sales?from=2026-08-01&to=2026-08-28", nil)
	from, to, err := parseDateRange(r, 30)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", from.Format("2006-01-02"))
	// to is exclusive, so the 28th itself is inside the range
	assert.Equal(t, "2026-08-29", to.Format("2006-01-02"))

	r = httptest.NewRequest("GET", "/reports/sales", nil)
	from, to, err = parseDateRange(r, 30)
	require.NoError(t, err)
	assert.InDelta(t, float64(30*24*time.Hour), float64(to.Sub(from)), float64(time.Minute))

	r = httptest.NewRequest("GET", "/reports/sales?from=2026-08-28&to=2026-08-01", nil)
	_, _, err = parseDateRange(r, 30)
	require.Error(t, err)

	r = httptest.NewRequest("GET", "/reports/sales?from=garbage", nil)
	_, _, err = parseDateRange(r, 30)
	require.Error(t, err)
}
