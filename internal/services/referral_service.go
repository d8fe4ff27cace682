package services

import (
	"errors"
	"fmt"

	"cbots-backend/internal/models"

	"gorm.io/gorm"
)

const (
	// Every 100th qualified referral pays the referrer 15 per milestone
	// reached: 15 at 100, 30 at 200, and so on.
	referralMilestoneStep      = 100
	ReferralMilestoneBonusUnit = 15.0

	// Flat bonus paid to the referrer when a referred user buys their first bot.
	ReferralFirstBuyBonus = 5.0

	// Share of every bot profit credit paid to the referrer.
	ReferralProfitShareRate = 0.10
)

// ReferralQualification describes what happened to the referrer when a
// referred user's first deposit was approved. Used by callers to emit
// notifications after the transaction commits.
type ReferralQualification struct {
	ReferrerID         uint
	QualifiedReferrals int
	MilestoneReached   bool
	BonusPaid          float64
}

// qualifyReferralTx increments the referrer's qualified-referral counter and
// pays the milestone bonus when the counter lands exactly on a multiple of
// 100. Runs inside the deposit-approval transaction so counter increments
// from concurrent approvals serialize on the referrer row lock. Returns nil
// when the referrer no longer exists.
func qualifyReferralTx(tx *gorm.DB, referrerID uint) (*ReferralQualification, error) {
	var referrer models.User
	if err := lockForUpdate(tx).First(&referrer, referrerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	referrer.QualifiedReferrals++
	if err := saveUserTx(tx, &referrer); err != nil {
		return nil, err
	}

	result := &ReferralQualification{
		ReferrerID:         referrer.ID,
		QualifiedReferrals: referrer.QualifiedReferrals,
	}

	if referrer.QualifiedReferrals%referralMilestoneStep == 0 {
		bonus := float64(referrer.QualifiedReferrals/referralMilestoneStep) * ReferralMilestoneBonusUnit
		desc := fmt.Sprintf("Referral milestone bonus: %d qualified referrals", referrer.QualifiedReferrals)
		if _, err := creditTx(tx, referrer.ID, bonus, models.TransactionTypeReferralMilestone, desc); err != nil {
			return nil, err
		}
		result.MilestoneReached = true
		result.BonusPaid = bonus
	}

	return result, nil
}

// firstBuyBonusTx pays the referrer a flat bonus for a referred user's first
// bot purchase. Runs inside the purchase transaction. No-op if the referrer
// is gone.
func firstBuyBonusTx(tx *gorm.DB, referrerID uint, buyerName string) error {
	var referrer models.User
	if err := tx.First(&referrer, referrerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	desc := fmt.Sprintf("First bot purchase bonus from referral %s", buyerName)
	_, err := creditTx(tx, referrer.ID, ReferralFirstBuyBonus, models.TransactionTypeReferralFirstBuy, desc)
	return err
}

// profitShareTx pays the referrer their share of a referred user's bot profit
// credit. Runs inside the per-bot accrual transaction.
func profitShareTx(tx *gorm.DB, referrerID uint, profit float64, botID uint) error {
	var referrer models.User
	if err := tx.First(&referrer, referrerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	share := profit * ReferralProfitShareRate
	if share <= 0 {
		return nil
	}

	desc := fmt.Sprintf("Profit share from referral bot #%d", botID)
	_, err := creditTx(tx, referrer.ID, share, models.TransactionTypeReferralShare, desc)
	return err
}
