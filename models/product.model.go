package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// ProductUnits are the accepted units of sale.
var ProductUnits = map[string]string{
	"kg":  "Kilogram",
	"lb":  "Pound",
	"crt": "Crate",
	"bnd": "Bundle",
	"dz":  "Dozen",
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null;index:idx_products_text" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null;index:idx_price_quantity" json:"price"`
	Unit        string          `gorm:"type:varchar(5);not null" json:"unit"`
	Quantity    int             `gorm:"not null;index:idx_price_quantity" json:"quantity"`
	CategoryID  uint            `gorm:"not null;index:idx_category_harvest" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`
	FarmerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"farmer_id"`
	Farmer      User            `gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE" json:"farmer"`
	HarvestDate time.Time       `gorm:"type:date;not null;index:idx_category_harvest" json:"harvest_date"`
	IsOrganic   bool            `gorm:"default:false" json:"is_organic"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
