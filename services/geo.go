package services

import (
	"github.com/shopspring/decimal"
	"github.com/umahmood/haversine"

	"farmlink/utils"
)

// Quote is a shipping estimate. Fallback is set when the tariff could not be
// computed from coordinates and the flat default was charged instead;
// checkout never fails on a bad location string.
type Quote struct {
	Cost     decimal.Decimal
	Fallback bool
}

// GeoService prices shipping as base cost plus a per-kilometre rate over the
// great-circle distance between two "lat,lon" strings.
type GeoService struct {
	BaseCost     decimal.Decimal
	PerKm        decimal.Decimal
	FallbackCost decimal.Decimal
}

func NewGeoService(baseCost, perKm, fallbackCost string) *GeoService {
	return &GeoService{
		BaseCost:     mustDecimal(baseCost, "50.00"),
		PerKm:        mustDecimal(perKm, "1.20"),
		FallbackCost: mustDecimal(fallbackCost, "100.00"),
	}
}

func (g *GeoService) EstimateShipping(origin, destination string) Quote {
	originLat, originLon, okOrigin := utils.ParseLocation(origin)
	destLat, destLon, okDest := utils.ParseLocation(destination)
	if !okOrigin || !okDest {
		return Quote{Cost: g.FallbackCost, Fallback: true}
	}

	_, km := haversine.Distance(
		haversine.Coord{Lat: originLat, Lon: originLon},
		haversine.Coord{Lat: destLat, Lon: destLon},
	)

	cost := g.BaseCost.Add(g.PerKm.Mul(decimal.NewFromFloat(km))).Round(2)
	return Quote{Cost: cost}
}

func mustDecimal(s, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return d
}
