package models

import "time"

const (
	BotStatusActive  = "active"
	BotStatusExpired = "expired"
)

// BotType is the admin-managed catalog of purchasable bots.
type BotType struct {
	ID           uint `gorm:"primarykey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string  `gorm:"not null"`
	Cost         float64 `gorm:"type:decimal(20,8);not null"`
	DailyProfit  float64 `gorm:"type:decimal(20,8);not null"`
	DurationDays int     `gorm:"not null"`
	Enabled      bool    `gorm:"not null;default:true"`
}

// ActiveBot is a purchased bot instance. AccruedDays counts how many daily
// profit credits have been settled, so the accrual sweep is idempotent per
// (bot, day): total credited == DailyProfit * AccruedDays at all times.
type ActiveBot struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint      `gorm:"index;not null"`
	BotTypeID   uint      `gorm:"index;not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	DailyProfit float64   `gorm:"type:decimal(20,8);not null"`
	TotalProfit float64   `gorm:"type:decimal(20,8);not null;default:0"`
	AccruedDays int       `gorm:"not null;default:0"`
	Status      string    `gorm:"type:varchar(20);index;not null;default:'active'"`
}
