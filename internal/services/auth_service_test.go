package services

import (
	"testing"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndVerify(t *testing.T) {
	setupTestDB()

	user, err := RegisterUser("Alice", "alice@example.com", "secret123", "")
	assert.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.ReferralCode)
	assert.Len(t, user.ReferralCode, 8)
	assert.NotEmpty(t, user.VerificationToken)
	// First account on a fresh install is the admin
	assert.Equal(t, models.RoleAdmin, user.Role)

	err = VerifyEmail(user.VerificationToken)
	assert.NoError(t, err)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.True(t, updated.IsVerified)
	assert.Empty(t, updated.VerificationToken)
	// Signup bonus lands on the bonus balance, not the spendable balance
	assert.Equal(t, SignupBonus, updated.BonusBalance)
	assert.Equal(t, 0.0, updated.Balance)

	var entry models.Transaction
	err = database.DB.Where("user_id = ? AND type = ?", user.ID, models.TransactionTypeSignupBonus).First(&entry).Error
	assert.NoError(t, err)
	assert.Equal(t, SignupBonus, entry.Amount)

	// The token was consumed; verifying again fails and pays nothing
	assert.ErrorIs(t, VerifyEmail(user.VerificationToken), ErrInvalidVerification)
	assert.ErrorIs(t, VerifyEmail(""), ErrInvalidVerification)
	database.DB.First(&updated, user.ID)
	assert.Equal(t, SignupBonus, updated.BonusBalance)
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	setupTestDB()

	_, err := RegisterUser("Alice", "alice@example.com", "secret123", "")
	assert.NoError(t, err)

	_, err = RegisterUser("Imposter", "alice@example.com", "other456", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_ResolvesReferralCode(t *testing.T) {
	setupTestDB()

	referrer, _ := RegisterUser("Ref", "ref@example.com", "secret123", "")

	referred, err := RegisterUser("Bob", "bob@example.com", "secret123", referrer.ReferralCode)
	assert.NoError(t, err)
	assert.NotNil(t, referred.ReferrerID)
	assert.Equal(t, referrer.ID, *referred.ReferrerID)

	// An unknown code registers without a referrer rather than failing
	orphan, err := RegisterUser("Carol", "carol@example.com", "secret123", "NOSUCH00")
	assert.NoError(t, err)
	assert.Nil(t, orphan.ReferrerID)
}

func TestLoginUser(t *testing.T) {
	setupTestDB()

	user, _ := RegisterUser("Alice", "alice@example.com", "secret123", "")

	_, _, err := LoginUser("alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	assert.NoError(t, VerifyEmail(user.VerificationToken))

	token, logged, err := LoginUser("alice@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = LoginUser("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = LoginUser("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("status", models.UserStatusBlocked)
	_, _, err = LoginUser("alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountBlocked)
}

func TestGetOrCreateExternalUser(t *testing.T) {
	setupTestDB()

	user, err := GetOrCreateExternalUser("ext-123", "Ext User", "ext@example.com")
	assert.NoError(t, err)
	assert.True(t, user.IsVerified)

	var stored models.User
	database.DB.First(&stored, user.ID)
	assert.Equal(t, SignupBonus, stored.BonusBalance)

	// Same UID resolves to the same account, no second bonus
	again, err := GetOrCreateExternalUser("ext-123", "Ext User", "ext@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", user.ID, models.TransactionTypeSignupBonus).Count(&count)
	assert.Equal(t, int64(1), count)

	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("status", models.UserStatusBlocked)
	_, err = GetOrCreateExternalUser("ext-123", "Ext User", "ext@example.com")
	assert.ErrorIs(t, err, ErrAccountBlocked)
}
