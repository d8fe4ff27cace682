package user

import (
	"time"

	"cbots-backend/internal/models"
)

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Balance            float64 `json:"balance"`
	BonusBalance       float64 `json:"bonus_balance"`
	ReferralCode       string  `json:"referral_code"`
	QualifiedReferrals int     `json:"qualified_referrals"`
	Role               string  `json:"role"`
	Status             string  `json:"status"`
}

// TransactionResponse is a single ledger entry on the dashboard.
type TransactionResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type DashboardResponse struct {
	User         UserResponse          `json:"user"`
	Transactions []TransactionResponse `json:"transactions"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Balance:            u.Balance,
		BonusBalance:       u.BonusBalance,
		ReferralCode:       u.ReferralCode,
		QualifiedReferrals: u.QualifiedReferrals,
		Role:               u.Role,
		Status:             u.Status,
	}
}

func toTransactionResponses(entries []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, TransactionResponse{
			ID:          t.ID,
			Type:        string(t.Type),
			Amount:      t.Amount,
			Description: t.Description,
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt,
		})
	}
	return out
}
