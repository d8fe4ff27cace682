package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentMethod describes where users should send their deposit; Details is a
// free-form JSON blob (wallet address, bank account, QR code URL...).
type PaymentMethod struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string         `gorm:"not null"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	Enabled   bool           `gorm:"not null;default:true"`
}

type Banner struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	ImageURL  string `gorm:"not null"`
}
