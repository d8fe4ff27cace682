package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"cbots-backend/config"
	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflictRetry signals a transaction conflict in the store; the
	// operation left no partial state and the caller may retry it.
	ErrConflictRetry = errors.New("transaction conflict, please retry")
)

func ledgerSecret() string {
	secret := "default-secret"
	if cfg, err := config.LoadConfig(); err == nil && cfg.LedgerSecret != "" {
		secret = cfg.LedgerSecret
	}
	return secret
}

// wrapTxErr maps low-level transaction failures onto ErrConflictRetry so
// callers can distinguish retryable aborts from business-rule violations.
func wrapTxErr(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "database is locked") {
		return ErrConflictRetry
	}
	return err
}

// lockForUpdate takes a row-level lock on whatever the chained query reads.
// Postgres emits SELECT ... FOR UPDATE; the sqlite driver used in tests has
// no row locks and drops the clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// saveUserTx writes a mutated user row back under its optimistic-lock
// version. The UPDATE only applies while the version is unchanged since the
// read; a lost race surfaces as ErrConflictRetry and aborts the surrounding
// transaction.
func saveUserTx(tx *gorm.DB, user *models.User) error {
	prev := user.Version
	user.Version = prev + 1
	result := tx.Model(&models.User{}).
		Where("id = ? AND version = ?", user.ID, prev).
		Select("*").Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflictRetry
	}
	return nil
}

// creditTx adds amount to the user's available balance and appends one
// completed ledger entry. Must run inside tx; the row lock makes the
// read-modify-write safe against concurrent mutations of the same user.
func creditTx(tx *gorm.DB, userID uint, amount float64, txType models.TransactionType, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	balanceBefore := user.Balance
	user.Balance += amount
	if err := saveUserTx(tx, &user); err != nil {
		return nil, err
	}

	entry := models.Transaction{
		UserID:        user.ID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  user.Balance,
		Description:   description,
		Status:        models.TransactionStatusCompleted,
		CreatedAt:     time.Now(),
	}
	entry.Hash = entry.GenerateHash(ledgerSecret())

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// debitTx removes amount from the user's available balance and appends one
// ledger entry with a negative amount. Withdrawal holds pass status=pending;
// everything else passes status=completed. Fails with ErrInsufficientFunds
// when amount exceeds the current balance; the check and the mutation share
// the row lock so concurrent debits cannot overdraw.
func debitTx(tx *gorm.DB, userID uint, amount float64, txType models.TransactionType, description string, status models.TransactionStatus) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	balanceBefore := user.Balance
	user.Balance -= amount
	if err := saveUserTx(tx, &user); err != nil {
		return nil, err
	}

	entry := models.Transaction{
		UserID:        user.ID,
		Type:          txType,
		Amount:        -amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  user.Balance,
		Description:   description,
		Status:        status,
		CreatedAt:     time.Now(),
	}
	entry.Hash = entry.GenerateHash(ledgerSecret())

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// creditBonusTx adds amount to the user's bonus balance. Bonus funds are
// tracked apart from the available balance and are never merged into it, so
// the entry records the bonus balance movement instead.
func creditBonusTx(tx *gorm.DB, userID uint, amount float64, txType models.TransactionType, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	balanceBefore := user.BonusBalance
	user.BonusBalance += amount
	if err := saveUserTx(tx, &user); err != nil {
		return nil, err
	}

	entry := models.Transaction{
		UserID:        user.ID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  user.BonusBalance,
		Description:   description,
		Status:        models.TransactionStatusCompleted,
		CreatedAt:     time.Now(),
	}
	entry.Hash = entry.GenerateHash(ledgerSecret())

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Credit runs a single credit in its own transaction.
func Credit(userID uint, amount float64, txType models.TransactionType, description string) (*models.Transaction, error) {
	var entry *models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = creditTx(tx, userID, amount, txType, description)
		return err
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}
	return entry, nil
}

// Debit runs a single completed debit in its own transaction.
func Debit(userID uint, amount float64, txType models.TransactionType, description string) (*models.Transaction, error) {
	var entry *models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = debitTx(tx, userID, amount, txType, description, models.TransactionStatusCompleted)
		return err
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}
	return entry, nil
}

// TransactionFilter defines criteria for filtering ledger entries
type TransactionFilter struct {
	UserID    *uint
	Type      *models.TransactionType
	Status    *models.TransactionStatus
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	Limit     int
}

// FindTransactions retrieves a paginated list of ledger entries with filtering
func FindTransactions(filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := database.DB.Model(&models.Transaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GenerateTransactionCSV generates a CSV file content for ledger export
func GenerateTransactionCSV(transactions []models.Transaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{
		"ID", "Time", "User ID", "Type", "Amount",
		"Balance Before", "Balance After", "Description", "Status", "Hash",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.CreatedAt.Format(time.RFC3339Nano),
			fmt.Sprintf("%d", t.UserID),
			string(t.Type),
			fmt.Sprintf("%.2f", t.Amount),
			fmt.Sprintf("%.2f", t.BalanceBefore),
			fmt.Sprintf("%.2f", t.BalanceAfter),
			t.Description,
			string(t.Status),
			t.Hash,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
