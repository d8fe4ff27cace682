package services

import (
	"testing"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func seedActiveBot(userID uint, dailyProfit float64, durationDays int, start time.Time) *models.ActiveBot {
	bot := &models.ActiveBot{
		UserID:      userID,
		BotTypeID:   1,
		StartDate:   start,
		EndDate:     start.Add(time.Duration(durationDays) * 24 * time.Hour),
		DailyProfit: dailyProfit,
		Status:      models.BotStatusActive,
	}
	if err := database.DB.Create(bot).Error; err != nil {
		panic(err)
	}
	return bot
}

func TestRunDailyAccrual_CreditsPerDay(t *testing.T) {
	setupTestDB()
	user := seedUser("earner", 0)
	start := time.Now().Add(-1 * time.Hour)
	bot := seedActiveBot(user.ID, 2, 10, start)

	// Day 1, 2, 3 sweeps credit one day of profit each
	for day := 1; day <= 3; day++ {
		credited, err := RunDailyAccrual(start.Add(time.Duration(day)*24*time.Hour + time.Minute))
		assert.NoError(t, err)
		assert.Equal(t, 1, credited)
	}

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 6.0, updated.Balance)

	var entries []models.Transaction
	database.DB.Where("user_id = ? AND type = ?", user.ID, models.TransactionTypeBotProfit).
		Order("id asc").Find(&entries)
	assert.Len(t, entries, 3)
	assert.Contains(t, entries[2].Description, "(day 3)")

	var reloaded models.ActiveBot
	database.DB.First(&reloaded, bot.ID)
	assert.Equal(t, 6.0, reloaded.TotalProfit)
	assert.Equal(t, 3, reloaded.AccruedDays)
	assert.Equal(t, models.BotStatusActive, reloaded.Status)
}

func TestRunDailyAccrual_SameDayRerunIsNoop(t *testing.T) {
	setupTestDB()
	user := seedUser("earner", 0)
	start := time.Now()
	seedActiveBot(user.ID, 2, 10, start)

	at := start.Add(24*time.Hour + time.Minute)
	credited, err := RunDailyAccrual(at)
	assert.NoError(t, err)
	assert.Equal(t, 1, credited)

	credited, err = RunDailyAccrual(at.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 0, credited)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 2.0, updated.Balance)
}

func TestRunDailyAccrual_CatchesUpMissedDays(t *testing.T) {
	setupTestDB()
	user := seedUser("earner", 0)
	start := time.Now()
	seedActiveBot(user.ID, 3, 10, start)

	// A single sweep after four days of downtime settles all four
	credited, err := RunDailyAccrual(start.Add(4*24*time.Hour + time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 4, credited)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 12.0, updated.Balance)
}

func TestRunDailyAccrual_ExpiresAtDuration(t *testing.T) {
	setupTestDB()
	user := seedUser("earner", 0)
	start := time.Now()
	bot := seedActiveBot(user.ID, 1, 3, start)

	// Well past the end date: credits cap at the duration, never beyond
	credited, err := RunDailyAccrual(start.Add(30 * 24 * time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 3, credited)

	var reloaded models.ActiveBot
	database.DB.First(&reloaded, bot.ID)
	assert.Equal(t, models.BotStatusExpired, reloaded.Status)
	assert.Equal(t, 3, reloaded.AccruedDays)
	assert.Equal(t, 3.0, reloaded.TotalProfit)

	// Expired bots are skipped entirely on later sweeps
	credited, err = RunDailyAccrual(start.Add(60 * 24 * time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 0, credited)
}

func TestRunDailyAccrual_PaysProfitShare(t *testing.T) {
	setupTestDB()
	referrer := seedUser("ref", 0)
	earner := seedUser("earner", 0)
	database.DB.Model(&earner).Update("referrer_id", referrer.ID)
	start := time.Now()
	seedActiveBot(earner.ID, 10, 5, start)

	_, err := RunDailyAccrual(start.Add(2*24*time.Hour + time.Minute))
	assert.NoError(t, err)

	var updatedEarner, updatedReferrer models.User
	database.DB.First(&updatedEarner, earner.ID)
	database.DB.First(&updatedReferrer, referrer.ID)
	assert.Equal(t, 20.0, updatedEarner.Balance)
	assert.Equal(t, 20.0*ReferralProfitShareRate, updatedReferrer.Balance)

	var count int64
	database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", referrer.ID, models.TransactionTypeReferralShare).Count(&count)
	assert.Equal(t, int64(2), count)
}
