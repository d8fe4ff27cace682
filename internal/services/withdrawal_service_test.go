package services

import (
	"testing"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSubmitWithdrawal_HoldsFunds(t *testing.T) {
	setupTestDB()
	user := seedUser("holder", 100)

	withdrawal, err := SubmitWithdrawal(user.ID, 40, "addr1")
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, withdrawal.Status)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 60.0, updated.Balance)

	var entry models.Transaction
	database.DB.First(&entry, withdrawal.TransactionID)
	assert.Equal(t, models.TransactionTypeWithdrawal, entry.Type)
	assert.Equal(t, -40.0, entry.Amount)
	assert.Equal(t, models.TransactionStatusPending, entry.Status)
}

func TestSubmitWithdrawal_InsufficientFunds(t *testing.T) {
	setupTestDB()
	user := seedUser("broke", 100)

	_, err := SubmitWithdrawal(user.ID, 200, "addr1")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 100.0, updated.Balance)

	var count int64
	database.DB.Model(&models.WithdrawalRequest{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	database.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestApproveWithdrawal(t *testing.T) {
	setupTestDB()
	user := seedUser("approver", 100)

	withdrawal, _ := SubmitWithdrawal(user.ID, 40, "addr1")

	err := ApproveWithdrawal(withdrawal.ID, "")
	assert.ErrorIs(t, err, ErrProofOfSendRequired)

	err = ApproveWithdrawal(withdrawal.ID, "uploads/proofs/send.png")
	assert.NoError(t, err)

	// Funds were held at submit time; approval changes no balance
	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 60.0, updated.Balance)

	var entry models.Transaction
	database.DB.First(&entry, withdrawal.TransactionID)
	assert.Equal(t, models.TransactionStatusCompleted, entry.Status)

	var reloaded models.WithdrawalRequest
	database.DB.First(&reloaded, withdrawal.ID)
	assert.Equal(t, models.RequestStatusApproved, reloaded.Status)
	assert.Equal(t, "uploads/proofs/send.png", reloaded.ProofOfSendURL)
	assert.NotNil(t, reloaded.ProcessedAt)

	assert.ErrorIs(t, ApproveWithdrawal(withdrawal.ID, "uploads/proofs/send.png"), ErrAlreadyProcessed)

	// Balance equals sum of completed entries throughout
	assert.Equal(t, updated.Balance, sumCompleted(t, user.ID)+100)
}

func TestRejectWithdrawal_RefundsOnce(t *testing.T) {
	setupTestDB()
	user := seedUser("refundee", 100)

	withdrawal, _ := SubmitWithdrawal(user.ID, 40, "addr1")

	err := RejectWithdrawal(withdrawal.ID, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	err = RejectWithdrawal(withdrawal.ID, "bad address")
	assert.NoError(t, err)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 100.0, updated.Balance)

	var entry models.Transaction
	database.DB.First(&entry, withdrawal.TransactionID)
	assert.Equal(t, models.TransactionStatusRejected, entry.Status)
	assert.Contains(t, entry.Description, "bad address")

	var reloaded models.WithdrawalRequest
	database.DB.First(&reloaded, withdrawal.ID)
	assert.Equal(t, models.RequestStatusRejected, reloaded.Status)
	assert.Equal(t, "bad address", reloaded.RejectReason)

	// Rejecting twice refunds nothing further
	assert.ErrorIs(t, RejectWithdrawal(withdrawal.ID, "again"), ErrAlreadyProcessed)
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 100.0, updated.Balance)
}

func TestRejectWithdrawal_NotFound(t *testing.T) {
	setupTestDB()

	err := RejectWithdrawal(9999, "nope")
	assert.ErrorIs(t, err, ErrWithdrawalNotFound)
}

func TestRejectWithdrawal_RehashesEntry(t *testing.T) {
	setupTestDB()
	user := seedUser("rehash", 100)

	withdrawal, _ := SubmitWithdrawal(user.ID, 40, "addr1")
	assert.NoError(t, RejectWithdrawal(withdrawal.ID, "bad address"))

	// Rejection rewrote the description, which feeds the entry hash; the
	// stored hash must still verify against the stored fields.
	var entry models.Transaction
	database.DB.First(&entry, withdrawal.TransactionID)
	assert.Equal(t, entry.GenerateHash(ledgerSecret()), entry.Hash)
}
