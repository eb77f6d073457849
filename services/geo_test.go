package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEstimateShippingSamePoint(t *testing.T) {
	geo := NewGeoService("50.00", "1.20", "100.00")

	quote := geo.EstimateShipping("10.6918,-61.2225", "10.6918,-61.2225")
	assert.False(t, quote.Fallback)
	assert.True(t, quote.Cost.Equal(decimal.RequireFromString("50.00")), "zero distance charges the base cost, got %s", quote.Cost)
}

func TestEstimateShippingDistance(t *testing.T) {
	geo := NewGeoService("50.00", "1.20", "100.00")

	// Port of Spain to Kingston is roughly 1860 km great-circle.
	quote := geo.EstimateShipping("10.6918,-61.2225", "17.9712,-76.7928")
	assert.False(t, quote.Fallback)

	base := decimal.RequireFromString("50.00")
	km := quote.Cost.Sub(base).Div(decimal.RequireFromString("1.20"))
	assert.True(t, km.GreaterThan(decimal.NewFromInt(1700)), "distance too small: %s km", km)
	assert.True(t, km.LessThan(decimal.NewFromInt(2000)), "distance too large: %s km", km)
}

func TestEstimateShippingFallback(t *testing.T) {
	geo := NewGeoService("50.00", "1.20", "100.00")
	fallback := decimal.RequireFromString("100.00")

	for _, origin := range []string{"", "not,coords", "10.0", "10.0,-61.0,5.0"} {
		quote := geo.EstimateShipping(origin, "10.6918,-61.2225")
		assert.True(t, quote.Fallback, "origin %q should fall back", origin)
		assert.True(t, quote.Cost.Equal(fallback))
	}

	quote := geo.EstimateShipping("10.6918,-61.2225", "broken")
	assert.True(t, quote.Fallback)
	assert.True(t, quote.Cost.Equal(fallback))
}

func TestGeoServiceBadTariffConfig(t *testing.T) {
	geo := NewGeoService("", "junk", "")
	assert.True(t, geo.BaseCost.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, geo.PerKm.Equal(decimal.RequireFromString("1.20")))
	assert.True(t, geo.FallbackCost.Equal(decimal.RequireFromString("100.00")))
}
