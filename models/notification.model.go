package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

const (
	NotificationOrder   = "order"
	NotificationPayment = "payment"
	NotificationSystem  = "system"
	NotificationMessage = "message"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Type      string     `gorm:"type:varchar(20);not null" json:"type"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	RelatedID *uuid.UUID `gorm:"type:uuid" json:"related_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
