package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"
	"cbots-backend/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup bonus credited to the bonus balance once the email is verified.
const SignupBonus = 5.0

var (
	ErrEmailTaken          = errors.New("this email is already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotVerified    = errors.New("please verify your email first")
	ErrAccountBlocked      = errors.New("this account has been blocked")
	ErrInvalidVerification = errors.New("invalid or expired verification token")
)

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func newVerificationToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// RegisterUser creates an unverified account. The referrer reference is
// resolved from the referral code here, once, and never changes afterwards.
func RegisterUser(name, email, password, referralCode string) (*models.User, error) {
	var existing models.User
	result := database.DB.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var referrerID *uint
	if referralCode != "" {
		var referrer models.User
		if err := database.DB.Where("referral_code = ?", referralCode).First(&referrer).Error; err == nil {
			referrerID = &referrer.ID
		}
	}

	var userCount int64
	database.DB.Model(&models.User{}).Count(&userCount)

	role := models.RoleUser
	if userCount == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		Password:          string(hashedPassword),
		ReferralCode:      newReferralCode(),
		ReferrerID:        referrerID,
		Role:              role,
		Status:            models.UserStatusActive,
		VerificationToken: newVerificationToken(),
	}

	if err := database.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail activates the account and credits the signup bonus to the
// bonus balance, both in one transaction so the bonus cannot be claimed twice.
func VerifyEmail(token string) error {
	if token == "" {
		return ErrInvalidVerification
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("verification_token = ?", token).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidVerification
			}
			return err
		}

		user.IsVerified = true
		user.VerificationToken = ""
		if err := saveUserTx(tx, &user); err != nil {
			return err
		}

		_, err := creditBonusTx(tx, user.ID, SignupBonus, models.TransactionTypeSignupBonus, "Signup bonus")
		return err
	})
	if err != nil {
		return wrapTxErr(err)
	}

	Notify(user.ID, "Welcome!",
		"Your email is verified and your signup bonus has been credited.", "")
	return nil
}

// LoginUser authenticates a password account and issues a JWT.
func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, ErrEmailNotVerified
	}
	if user.Status == models.UserStatusBlocked {
		return "", nil, ErrAccountBlocked
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// GetOrCreateExternalUser resolves the account for an external identity
// provider UID, provisioning it on first sight. Externally authenticated
// accounts are considered verified, so the signup bonus is credited at
// creation.
func GetOrCreateExternalUser(uid, name, email string) (*models.User, error) {
	var user models.User
	err := database.DB.Where("external_uid = ?", uid).First(&user).Error
	if err == nil {
		if user.Status == models.UserStatusBlocked {
			return nil, ErrAccountBlocked
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Name:         name,
			Email:        email,
			ExternalUID:  &uid,
			ReferralCode: newReferralCode(),
			Role:         models.RoleUser,
			Status:       models.UserStatusActive,
			IsVerified:   true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		_, err := creditBonusTx(tx, user.ID, SignupBonus, models.TransactionTypeSignupBonus, "Signup bonus")
		return err
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	return &user, nil
}
