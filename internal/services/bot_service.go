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
	ErrBotTypeNotFound = errors.New("bot type not found")
	ErrBotTypeDisabled = errors.New("bot type is not available for purchase")
)

// PurchaseBot debits the bot's cost and activates a bot instance in one
// transaction. A referred user's first purchase also pays the referrer's
// first-buy bonus inside the same transaction.
func PurchaseBot(userID, botTypeID uint) (*models.ActiveBot, error) {
	var bot *models.ActiveBot
	var botType models.BotType

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. Resolve the catalog entry
		if err := tx.First(&botType, botTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBotTypeNotFound
			}
			return err
		}
		if !botType.Enabled {
			return ErrBotTypeDisabled
		}

		// 2. Pay for it
		desc := fmt.Sprintf("Purchase of bot %s", botType.Name)
		if _, err := debitTx(tx, userID, botType.Cost, models.TransactionTypeBotPurchase, desc, models.TransactionStatusCompleted); err != nil {
			return err
		}

		// 3. Activate the instance
		now := time.Now()
		bot = &models.ActiveBot{
			UserID:      userID,
			BotTypeID:   botType.ID,
			StartDate:   now,
			EndDate:     now.Add(time.Duration(botType.DurationDays) * 24 * time.Hour),
			DailyProfit: botType.DailyProfit,
			Status:      models.BotStatusActive,
		}
		if err := tx.Create(bot).Error; err != nil {
			return err
		}

		// 4. First purchase pays the referrer's first-buy bonus
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if !user.HasPurchasedBot {
			user.HasPurchasedBot = true
			if err := saveUserTx(tx, &user); err != nil {
				return err
			}
			if user.ReferrerID != nil {
				if err := firstBuyBonusTx(tx, *user.ReferrerID, user.Name); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	Notify(userID, "Bot activated",
		fmt.Sprintf("Your %s is active and will earn %.2f per day for %d days.",
			botType.Name, botType.DailyProfit, botType.DurationDays), "")
	return bot, nil
}

// FindActiveBots lists a user's bot instances, newest first.
func FindActiveBots(userID uint) ([]models.ActiveBot, error) {
	var bots []models.ActiveBot
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Find(&bots).Error; err != nil {
		return nil, err
	}
	return bots, nil
}

// GetBotTypes returns the purchasable catalog; admins pass enabledOnly=false
// to see disabled entries too.
func GetBotTypes(enabledOnly bool) ([]models.BotType, error) {
	var botTypes []models.BotType
	query := database.DB.Model(&models.BotType{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	if err := query.Order("cost asc").Find(&botTypes).Error; err != nil {
		return nil, err
	}
	return botTypes, nil
}

func CreateBotType(name string, cost, dailyProfit float64, durationDays int) (*models.BotType, error) {
	if cost <= 0 || dailyProfit <= 0 || durationDays <= 0 {
		return nil, ErrInvalidAmount
	}
	botType := &models.BotType{
		Name:         name,
		Cost:         cost,
		DailyProfit:  dailyProfit,
		DurationDays: durationDays,
		Enabled:      true,
	}
	if err := database.DB.Create(botType).Error; err != nil {
		return nil, err
	}
	return botType, nil
}

func UpdateBotType(id uint, updates map[string]interface{}) (*models.BotType, error) {
	var botType models.BotType
	if err := database.DB.First(&botType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBotTypeNotFound
		}
		return nil, err
	}

	updates["updated_at"] = time.Now()
	if err := database.DB.Model(&botType).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &botType, nil
}

func DeleteBotType(id uint) error {
	return database.DB.Delete(&models.BotType{}, id).Error
}
