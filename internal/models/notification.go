package models

import "time"

// Notification is a best-effort record written by the async notifier worker.
// Business operations never wait for (or fail on) notification writes.
type Notification struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint   `gorm:"index;not null"`
	Title     string `gorm:"not null"`
	Message   string `gorm:"type:text"`
	Link      string
	Read      bool `gorm:"not null;default:false"`
}
