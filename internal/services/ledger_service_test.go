package services

import (
	"testing"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(
		&models.User{}, &models.Transaction{}, &models.DepositRequest{},
		&models.WithdrawalRequest{}, &models.BotType{}, &models.ActiveBot{},
		&models.PaymentMethod{}, &models.Banner{}, &models.Notification{},
	)
	db.AutoMigrate(
		&models.User{}, &models.Transaction{}, &models.DepositRequest{},
		&models.WithdrawalRequest{}, &models.BotType{}, &models.ActiveBot{},
		&models.PaymentMethod{}, &models.Banner{}, &models.Notification{},
	)

	database.DB = db
	database.RedisClient = nil
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func seedUser(name string, balance float64) models.User {
	user := models.User{
		Name:         name,
		Email:        name + "@test.local",
		Balance:      balance,
		ReferralCode: "REF" + name,
		Status:       models.UserStatusActive,
		IsVerified:   true,
		Version:      1,
	}
	database.DB.Create(&user)
	return user
}

// sumCompleted adds up the signed amounts of completed non-bonus entries,
// which must always equal the available balance.
func sumCompleted(t *testing.T, userID uint) float64 {
	t.Helper()
	var entries []models.Transaction
	database.DB.Where("user_id = ? AND status = ? AND type <> ?",
		userID, models.TransactionStatusCompleted, models.TransactionTypeSignupBonus).
		Find(&entries)

	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}

func TestCreditDebit_BalanceMatchesLedger(t *testing.T) {
	setupTestDB()
	user := seedUser("ledger", 0)

	_, err := Credit(user.ID, 100, models.TransactionTypeDeposit, "deposit")
	assert.NoError(t, err)
	_, err = Debit(user.ID, 30, models.TransactionTypeBotPurchase, "bot")
	assert.NoError(t, err)
	_, err = Credit(user.ID, 50, models.TransactionTypeBotProfit, "profit")
	assert.NoError(t, err)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 120.0, updated.Balance)
	assert.Equal(t, updated.Balance, sumCompleted(t, user.ID))
}

func TestCredit_RecordsEntry(t *testing.T) {
	setupTestDB()
	user := seedUser("credit", 10)

	entry, err := Credit(user.ID, 25, models.TransactionTypeDeposit, "Deposit approved")
	assert.NoError(t, err)
	assert.Equal(t, 25.0, entry.Amount)
	assert.Equal(t, 10.0, entry.BalanceBefore)
	assert.Equal(t, 35.0, entry.BalanceAfter)
	assert.Equal(t, models.TransactionStatusCompleted, entry.Status)
	assert.NotEmpty(t, entry.Hash)
}

func TestDebit_InsufficientFunds(t *testing.T) {
	setupTestDB()
	user := seedUser("poor", 10)

	_, err := Debit(user.ID, 20, models.TransactionTypeBotPurchase, "too much")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var updated models.User
	database.DB.First(&updated, user.ID)
	assert.Equal(t, 10.0, updated.Balance)

	var count int64
	database.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreditDebit_InvalidAmount(t *testing.T) {
	setupTestDB()
	user := seedUser("zero", 10)

	_, err := Credit(user.ID, 0, models.TransactionTypeDeposit, "zero")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Debit(user.ID, -5, models.TransactionTypeBotPurchase, "negative")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCredit_UserNotFound(t *testing.T) {
	setupTestDB()

	_, err := Credit(9999, 10, models.TransactionTypeDeposit, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// The balance invariants rely on the locked reads actually requesting a row
// lock; rendered against postgres they must carry the FOR UPDATE clause.
func TestLockForUpdate_EmitsRowLock(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=cbots dbname=cbots",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	assert.NoError(t, err)

	stmt := lockForUpdate(db).Find(&models.User{}, 1).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

// Two writers holding the same snapshot of a user must not both apply; the
// version check turns the stale write into ErrConflictRetry.
func TestSaveUser_StaleVersionConflicts(t *testing.T) {
	setupTestDB()
	user := seedUser("racer", 100)

	var first, second models.User
	database.DB.First(&first, user.ID)
	database.DB.First(&second, user.ID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		first.Balance = 70
		return saveUserTx(tx, &first)
	})
	assert.NoError(t, err)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		second.Balance = 10
		return saveUserTx(tx, &second)
	})
	assert.ErrorIs(t, err, ErrConflictRetry)

	var final models.User
	database.DB.First(&final, user.ID)
	assert.Equal(t, 70.0, final.Balance)
	assert.Equal(t, 2, final.Version)
}
