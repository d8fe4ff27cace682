package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string // empty when the account was provisioned by an external identity provider
	// ExternalUID is the handle supplied by an external identity provider
	// (AUTH_MODE=external). Unique when present.
	ExternalUID *string `gorm:"uniqueIndex"`

	// Balance is the available balance. It always equals the sum of this
	// user's completed non-bonus ledger entries. BonusBalance is tracked
	// separately and is never merged into Balance.
	Balance      float64 `gorm:"type:decimal(20,8);not null;default:0"`
	BonusBalance float64 `gorm:"type:decimal(20,8);not null;default:0"`

	ReferralCode string `gorm:"uniqueIndex;not null"`
	// ReferrerID is set once at registration and never changes.
	ReferrerID         *uint `gorm:"index"`
	QualifiedReferrals int   `gorm:"not null;default:0"`
	HasDeposited       bool  `gorm:"not null;default:false"`
	HasPurchasedBot    bool  `gorm:"not null;default:false"`

	Role   string `gorm:"not null;default:'user'"`
	Status string `gorm:"not null;default:'active'"`

	IsVerified        bool `gorm:"not null;default:false"`
	VerificationToken string
	Version           int `gorm:"default:1"`
}
