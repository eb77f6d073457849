package initializers

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"farmlink/models"
)

// SeedReferenceData upserts the CARICOM countries and product categories the
// marketplace depends on. Safe to run on every start.
func SeedReferenceData() {
	countries := []models.Country{
		{Code: "TT", Name: "Trinidad and Tobago", CurrencyCode: "TTD", TaxRate: decimal.RequireFromString("12.5")},
		{Code: "JM", Name: "Jamaica", CurrencyCode: "JMD", TaxRate: decimal.RequireFromString("15.0")},
		{Code: "BB", Name: "Barbados", CurrencyCode: "BBD", TaxRate: decimal.RequireFromString("17.5")},
		{Code: "GY", Name: "Guyana", CurrencyCode: "GYD", TaxRate: decimal.RequireFromString("14.0")},
		{Code: "BZ", Name: "Belize", CurrencyCode: "BZD", TaxRate: decimal.RequireFromString("12.5")},
		{Code: "GD", Name: "Grenada", CurrencyCode: "XCD", TaxRate: decimal.RequireFromString("15.0")},
		{Code: "LC", Name: "Saint Lucia", CurrencyCode: "XCD", TaxRate: decimal.RequireFromString("12.5")},
	}

	err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "currency_code", "tax_rate"}),
	}).Create(&countries).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed countries")
	}

	categories := []models.Category{
		{Code: "FRT", Name: "Fruits"},
		{Code: "VEG", Name: "Vegetables"},
		{Code: "HRB", Name: "Herbs and Spices"},
		{Code: "RTS", Name: "Roots and Tubers"},
		{Code: "LVS", Name: "Livestock", ExportRestricted: true},
		{Code: "FSH", Name: "Fish and Seafood", ExportRestricted: true},
	}

	err = DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "export_restricted"}),
	}).Create(&categories).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed categories")
	}
}
