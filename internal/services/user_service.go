package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid user status")

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := fmt.Sprintf("user:%d", userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, fmt.Sprintf("user:%d", userID))
	}
}

// FindUsers retrieves a paginated list of users.
func FindUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	offset := (page - 1) * limit

	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := database.DB.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// SetUserStatus blocks or unblocks an account.
func SetUserStatus(userID uint, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusBlocked {
		return ErrInvalidStatus
	}

	result := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	invalidateUserCache(userID)
	return nil
}

// GetDashboard returns the profile plus the most recent ledger entries, the
// projection the user home screen renders.
func GetDashboard(userID uint) (*models.User, []models.Transaction, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	var transactions []models.Transaction
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(10).Find(&transactions).Error; err != nil {
		return nil, nil, err
	}

	return &user, transactions, nil
}
