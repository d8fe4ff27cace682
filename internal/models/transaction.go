package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypeDeposit           TransactionType = "deposit"
	TransactionTypeWithdrawal        TransactionType = "withdrawal"
	TransactionTypeBotPurchase       TransactionType = "bot_purchase"
	TransactionTypeBotProfit         TransactionType = "bot_profit"
	TransactionTypeSignupBonus       TransactionType = "signup_bonus"
	TransactionTypeReferralMilestone TransactionType = "referral_milestone_bonus"
	TransactionTypeReferralShare     TransactionType = "referral_profit_share"
	TransactionTypeReferralFirstBuy  TransactionType = "referral_first_buy_bonus"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRejected  TransactionStatus = "rejected"
)

// Transaction is an append-only ledger entry. Amount is signed: credits are
// positive, debits negative. Only the Status and Description of withdrawal
// entries ever change after creation, in lockstep with the owning request.
type Transaction struct {
	ID            uint              `gorm:"primarykey"`
	CreatedAt     time.Time         `gorm:"precision:3"` // Millisecond precision
	UserID        uint              `gorm:"index;not null"`
	Type          TransactionType   `gorm:"type:varchar(50);index;not null"`
	Amount        float64           `gorm:"type:decimal(20,8);not null"`
	BalanceBefore float64           `gorm:"type:decimal(20,8);not null"`
	BalanceAfter  float64           `gorm:"type:decimal(20,8);not null"`
	Description   string            `gorm:"type:text"`
	Status        TransactionStatus `gorm:"type:varchar(20);index;not null;default:'completed'"`
	Hash          string            `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the transaction
func (t *Transaction) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%.8f|%.8f|%.8f|%s|%s",
		t.UserID, t.CreatedAt.UnixNano(), t.Amount, t.BalanceBefore, t.BalanceAfter,
		t.Description, t.Type)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
