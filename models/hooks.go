package models

import (
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

// IDs are assigned in the application so every row gets a UUID regardless
// of which database backs the store.

func (user *User) BeforeCreate(tx *gorm.DB) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.NewV4()
	}
	return nil
}

func (product *Product) BeforeCreate(tx *gorm.DB) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.NewV4()
	}
	return nil
}

func (cart *Cart) BeforeCreate(tx *gorm.DB) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.NewV4()
	}
	return nil
}

func (item *CartItem) BeforeCreate(tx *gorm.DB) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.NewV4()
	}
	return nil
}

func (order *Order) BeforeCreate(tx *gorm.DB) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.NewV4()
	}
	return nil
}

func (item *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.NewV4()
	}
	return nil
}

func (review *Review) BeforeCreate(tx *gorm.DB) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.NewV4()
	}
	return nil
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.NewV4()
	}
	return nil
}
