package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// User is a marketplace participant. Everyone registers as a farm; whether
// they act as buyer or seller depends on the request, not the row.
type User struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FarmName           string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"farm_name"`
	Email              string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password           string          `gorm:"type:varchar(255);not null" json:"-"`
	CountryCode        string          `gorm:"type:varchar(2);not null" json:"country_code"`
	Country            Country         `gorm:"foreignKey:CountryCode;constraint:OnDelete:RESTRICT" json:"country"`
	Region             string          `gorm:"type:varchar(50)" json:"region"`
	Certification      string          `gorm:"type:varchar(100)" json:"certification"`
	VerificationStatus string          `gorm:"type:varchar(20);default:'pending';index" json:"verification_status"`
	Location           string          `gorm:"type:varchar(100)" json:"location"` // "latitude,longitude"
	PaymentMethod      string          `gorm:"type:varchar(50)" json:"payment_method"`
	Rating             decimal.Decimal `gorm:"type:decimal(3,2);default:0" json:"rating"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserResponse is what middleware puts in c.Locals("user") and what the API
// returns; it never carries the password hash.
type UserResponse struct {
	ID                 uuid.UUID       `json:"id"`
	FarmName           string          `json:"farm_name"`
	Email              string          `json:"email"`
	CountryCode        string          `json:"country_code"`
	Region             string          `json:"region"`
	VerificationStatus string          `json:"verification_status"`
	Location           string          `json:"location"`
	Rating             decimal.Decimal `json:"rating"`
	CreatedAt          time.Time       `json:"created_at"`
}

func FilterUserRecord(user *User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		FarmName:           user.FarmName,
		Email:              user.Email,
		CountryCode:        user.CountryCode,
		Region:             user.Region,
		VerificationStatus: user.VerificationStatus,
		Location:           user.Location,
		Rating:             user.Rating,
		CreatedAt:          user.CreatedAt,
	}
}
