package models

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// DepositRequest is created when a user claims to have paid and uploads a
// proof image. The balance is only touched on approval.
type DepositRequest struct {
	ID              uint `gorm:"primarykey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          uint    `gorm:"index;not null"`
	Amount          float64 `gorm:"type:decimal(20,8);not null"`
	ProofImageURL   string  `gorm:"not null"`
	PaymentMethodID *uint
	Status          RequestStatus `gorm:"type:varchar(20);index;not null;default:'pending'"`
	ProcessedAt     *time.Time
	RejectReason    string
}

// WithdrawalRequest holds funds at submit time: the linked Transaction is the
// pending debit, refunded only if the request is rejected.
type WithdrawalRequest struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         uint          `gorm:"index;not null"`
	TransactionID  uint          `gorm:"index;not null"`
	Amount         float64       `gorm:"type:decimal(20,8);not null"`
	Address        string        `gorm:"not null"`
	Status         RequestStatus `gorm:"type:varchar(20);index;not null;default:'pending'"`
	ProofOfSendURL string
	ProcessedAt    *time.Time
	RejectReason   string
}
