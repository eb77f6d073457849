package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer           User            `gorm:"foreignKey:BuyerID;constraint:OnDelete:RESTRICT" json:"-"`
	FarmerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"farmer_id"`
	Farmer          User            `gorm:"foreignKey:FarmerID;constraint:OnDelete:RESTRICT" json:"-"`
	Status          string          `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tax_amount"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"shipping_cost"`
	PaymentIntentID string          `gorm:"type:varchar(100);index" json:"payment_intent_id"`
	TrackingNumber  string          `gorm:"type:varchar(100)" json:"tracking_number"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem snapshots a cart line at checkout. Price is copied from the
// product, never read live afterwards.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
