package services

import (
	"errors"
	"fmt"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrWithdrawalNotFound  = errors.New("withdrawal request not found")
	ErrAddressRequired     = errors.New("a destination address is required")
	ErrProofOfSendRequired = errors.New("proof of send is required to approve a withdrawal")
)

// SubmitWithdrawal debits the user immediately and creates a pending request
// linked to the held entry. Holding funds at request time keeps a user from
// queueing withdrawals that together exceed their balance.
func SubmitWithdrawal(userID uint, amount float64, address string) (*models.WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if address == "" {
		return nil, ErrAddressRequired
	}

	var withdrawal *models.WithdrawalRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. Hold the funds now; entry stays pending until approval
		desc := fmt.Sprintf("Withdrawal requested to %s", address)
		entry, err := debitTx(tx, userID, amount, models.TransactionTypeWithdrawal, desc, models.TransactionStatusPending)
		if err != nil {
			return err
		}

		// 2. Create the request referencing the held entry
		withdrawal = &models.WithdrawalRequest{
			UserID:        userID,
			TransactionID: entry.ID,
			Amount:        amount,
			Address:       address,
			Status:        models.RequestStatusPending,
		}
		return tx.Create(withdrawal).Error
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}
	return withdrawal, nil
}

// ApproveWithdrawal finalizes a pending withdrawal: the held entry flips to
// completed and the admin's proof-of-send is recorded. The funds were already
// debited at submit time, so no balance change happens here.
func ApproveWithdrawal(withdrawalID uint, proofOfSendURL string) error {
	if proofOfSendURL == "" {
		return ErrProofOfSendRequired
	}

	var withdrawal models.WithdrawalRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&withdrawal, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWithdrawalNotFound
			}
			return err
		}
		if withdrawal.Status != models.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		now := time.Now()
		withdrawal.Status = models.RequestStatusApproved
		withdrawal.ProofOfSendURL = proofOfSendURL
		withdrawal.ProcessedAt = &now
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}

		return tx.Model(&models.Transaction{}).
			Where("id = ?", withdrawal.TransactionID).
			Update("status", models.TransactionStatusCompleted).Error
	})
	if err != nil {
		return wrapTxErr(err)
	}

	Notify(withdrawal.UserID, "Withdrawal approved",
		fmt.Sprintf("Your withdrawal of %.2f to %s has been sent.", withdrawal.Amount, withdrawal.Address), "")
	return nil
}

// RejectWithdrawal refunds the held amount and flips the linked entry to
// rejected, in the same transaction as the status change. Rejecting twice
// returns ErrAlreadyProcessed and refunds nothing.
func RejectWithdrawal(withdrawalID uint, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	var withdrawal models.WithdrawalRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. Lock and guard the request
		if err := lockForUpdate(tx).First(&withdrawal, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWithdrawalNotFound
			}
			return err
		}
		if withdrawal.Status != models.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		now := time.Now()
		withdrawal.Status = models.RequestStatusRejected
		withdrawal.RejectReason = reason
		withdrawal.ProcessedAt = &now
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}

		// 2. Refund the held amount
		var user models.User
		if err := lockForUpdate(tx).First(&user, withdrawal.UserID).Error; err != nil {
			return err
		}
		user.Balance += withdrawal.Amount
		if err := saveUserTx(tx, &user); err != nil {
			return err
		}

		// 3. Flip the held entry to rejected. The description is a hash
		// input, so the entry is rehashed in the same write.
		var entry models.Transaction
		if err := tx.First(&entry, withdrawal.TransactionID).Error; err != nil {
			return err
		}
		entry.Status = models.TransactionStatusRejected
		entry.Description = fmt.Sprintf("Withdrawal rejected: %s", reason)
		entry.Hash = entry.GenerateHash(ledgerSecret())
		return tx.Save(&entry).Error
	})
	if err != nil {
		return wrapTxErr(err)
	}

	Notify(withdrawal.UserID, "Withdrawal rejected",
		fmt.Sprintf("Your withdrawal of %.2f was rejected and refunded: %s", withdrawal.Amount, reason), "")
	return nil
}

// WithdrawalFilter defines criteria for listing withdrawal requests
type WithdrawalFilter struct {
	UserID *uint
	Status *models.RequestStatus
	Page   int
	Limit  int
}

// FindWithdrawals retrieves a paginated list of withdrawal requests
func FindWithdrawals(filter WithdrawalFilter) ([]models.WithdrawalRequest, int64, error) {
	var withdrawals []models.WithdrawalRequest
	var total int64

	query := database.DB.Model(&models.WithdrawalRequest{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&withdrawals).Error; err != nil {
		return nil, 0, err
	}

	return withdrawals, total, nil
}
