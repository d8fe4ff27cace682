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
	ErrDepositNotFound  = errors.New("deposit request not found")
	ErrAlreadyProcessed = errors.New("request has already been processed")
	ErrProofRequired    = errors.New("proof of payment is required")
	ErrReasonRequired   = errors.New("a rejection reason is required")
)

// SubmitDeposit records a pending deposit claim. No balance effect until an
// admin approves it.
func SubmitDeposit(userID uint, amount float64, proofImageURL string, paymentMethodID *uint) (*models.DepositRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if proofImageURL == "" {
		return nil, ErrProofRequired
	}

	deposit := &models.DepositRequest{
		UserID:          userID,
		Amount:          amount,
		ProofImageURL:   proofImageURL,
		PaymentMethodID: paymentMethodID,
		Status:          models.RequestStatusPending,
	}

	if err := database.DB.Create(deposit).Error; err != nil {
		return nil, err
	}
	return deposit, nil
}

// ApproveDeposit credits the claimed amount, marks the request approved and,
// on the account's first approved deposit, runs referral qualification — all
// in one transaction. The pending-status guard makes double approval safe:
// the second call sees a non-pending row and returns ErrAlreadyProcessed
// without touching the balance.
func ApproveDeposit(depositID uint) error {
	var deposit models.DepositRequest
	var qualification *ReferralQualification

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. Lock and guard the request
		if err := lockForUpdate(tx).First(&deposit, depositID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepositNotFound
			}
			return err
		}
		if deposit.Status != models.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		// 2. Mark the request approved
		now := time.Now()
		deposit.Status = models.RequestStatusApproved
		deposit.ProcessedAt = &now
		if err := tx.Save(&deposit).Error; err != nil {
			return err
		}

		// 3. Credit the claimed amount
		desc := fmt.Sprintf("Deposit approved (request #%d)", deposit.ID)
		if _, err := creditTx(tx, deposit.UserID, deposit.Amount, models.TransactionTypeDeposit, desc); err != nil {
			return err
		}

		// 4. First approved deposit qualifies the referral
		var user models.User
		if err := tx.First(&user, deposit.UserID).Error; err != nil {
			return err
		}
		if !user.HasDeposited {
			user.HasDeposited = true
			if err := saveUserTx(tx, &user); err != nil {
				return err
			}
			if user.ReferrerID != nil {
				var err error
				qualification, err = qualifyReferralTx(tx, *user.ReferrerID)
				if err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return wrapTxErr(err)
	}

	Notify(deposit.UserID, "Deposit approved",
		fmt.Sprintf("Your deposit of %.2f has been approved.", deposit.Amount), "")
	if qualification != nil {
		Notify(qualification.ReferrerID, "New qualified referral",
			fmt.Sprintf("One of your referrals made their first deposit. Total: %d.", qualification.QualifiedReferrals), "")
		if qualification.MilestoneReached {
			Notify(qualification.ReferrerID, "Referral milestone reached",
				fmt.Sprintf("You reached %d qualified referrals and earned a %.0f bonus!",
					qualification.QualifiedReferrals, qualification.BonusPaid), "")
		}
	}

	return nil
}

// RejectDeposit closes a pending deposit request with a reason. No balance
// was held, so there is nothing to refund.
func RejectDeposit(depositID uint, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	var deposit models.DepositRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&deposit, depositID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepositNotFound
			}
			return err
		}
		if deposit.Status != models.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		now := time.Now()
		deposit.Status = models.RequestStatusRejected
		deposit.RejectReason = reason
		deposit.ProcessedAt = &now
		return tx.Save(&deposit).Error
	})
	if err != nil {
		return wrapTxErr(err)
	}

	Notify(deposit.UserID, "Deposit rejected",
		fmt.Sprintf("Your deposit of %.2f was rejected: %s", deposit.Amount, reason), "")
	return nil
}

// DepositFilter defines criteria for listing deposit requests
type DepositFilter struct {
	UserID *uint
	Status *models.RequestStatus
	Page   int
	Limit  int
}

// FindDeposits retrieves a paginated list of deposit requests
func FindDeposits(filter DepositFilter) ([]models.DepositRequest, int64, error) {
	var deposits []models.DepositRequest
	var total int64

	query := database.DB.Model(&models.DepositRequest{})

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
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&deposits).Error; err != nil {
		return nil, 0, err
	}

	return deposits, total, nil
}
