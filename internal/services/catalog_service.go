package services

import (
	"encoding/json"
	"errors"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrBannerNotFound        = errors.New("banner not found")
)

func GetPaymentMethods(enabledOnly bool) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	query := database.DB.Model(&models.PaymentMethod{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	if err := query.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func CreatePaymentMethod(name string, details map[string]interface{}, enabled bool) (*models.PaymentMethod, error) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	method := &models.PaymentMethod{
		Name:    name,
		Details: datatypes.JSON(detailsJSON),
		Enabled: enabled,
	}

	if err := database.DB.Create(method).Error; err != nil {
		return nil, err
	}
	return method, nil
}

func UpdatePaymentMethod(id uint, name string, details map[string]interface{}, enabled *bool) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := database.DB.First(&method, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if details != nil {
		detailsJSON, err := json.Marshal(details)
		if err != nil {
			return nil, err
		}
		updates["details"] = datatypes.JSON(detailsJSON)
	}
	if enabled != nil {
		updates["enabled"] = *enabled
	}
	updates["updated_at"] = time.Now()

	if err := database.DB.Model(&method).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func DeletePaymentMethod(id uint) error {
	return database.DB.Delete(&models.PaymentMethod{}, id).Error
}

func GetBanners() ([]models.Banner, error) {
	var banners []models.Banner
	if err := database.DB.Order("created_at desc").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func CreateBanner(imageURL string) (*models.Banner, error) {
	banner := &models.Banner{ImageURL: imageURL}
	if err := database.DB.Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func DeleteBanner(id uint) error {
	result := database.DB.Delete(&models.Banner{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}
