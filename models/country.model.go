package models

import "github.com/shopspring/decimal"

// Country is a CARICOM member state. Seeded at startup, rarely touched after.
type Country struct {
	Code         string          `gorm:"type:varchar(2);primary_key" json:"code"`
	Name         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CurrencyCode string          `gorm:"type:varchar(3);default:'TTD'" json:"currency_code"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
}

type Category struct {
	ID               uint   `gorm:"primary_key" json:"id"`
	Code             string `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name             string `gorm:"type:varchar(50);not null" json:"name"`
	ExportRestricted bool   `gorm:"default:false" json:"export_restricted"`
}
