package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var accrualMu sync.Mutex

// RunDailyAccrual settles daily bot profit for every active bot. One credit
// is made per elapsed calendar day since the bot started, capped at the bot's
// duration, so rerunning the sweep on the same day credits nothing further
// and a sweep after downtime catches up the missed days. The sweep is
// serialized; each bot settles in its own transaction so it composes with
// concurrent deposit/withdrawal processing on the same account.
func RunDailyAccrual(now time.Time) (int, error) {
	accrualMu.Lock()
	defer accrualMu.Unlock()

	var botIDs []uint
	if err := database.DB.Model(&models.ActiveBot{}).
		Where("status = ?", models.BotStatusActive).
		Pluck("id", &botIDs).Error; err != nil {
		return 0, err
	}

	credited := 0
	for _, id := range botIDs {
		n, err := accrueBot(id, now)
		if err != nil {
			zap.L().Error("bot accrual failed",
				zap.Uint("bot_id", id),
				zap.Error(err))
			continue
		}
		credited += n
	}

	return credited, nil
}

// accrueBot settles one bot inside a fresh transaction and returns the number
// of daily credits made.
func accrueBot(botID uint, now time.Time) (int, error) {
	credited := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var bot models.ActiveBot
		if err := lockForUpdate(tx).First(&bot, botID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if bot.Status != models.BotStatusActive {
			return nil
		}

		durationDays := int(bot.EndDate.Sub(bot.StartDate).Hours() / 24)
		elapsedDays := int(now.Sub(bot.StartDate).Hours() / 24)
		if elapsedDays > durationDays {
			elapsedDays = durationDays
		}

		missing := elapsedDays - bot.AccruedDays
		if missing < 0 {
			missing = 0
		}

		var owner models.User
		if missing > 0 {
			if err := tx.First(&owner, bot.UserID).Error; err != nil {
				return err
			}
		}

		for i := 0; i < missing; i++ {
			day := bot.AccruedDays + i + 1
			desc := fmt.Sprintf("Daily profit from bot #%d (day %d)", bot.ID, day)
			if _, err := creditTx(tx, bot.UserID, bot.DailyProfit, models.TransactionTypeBotProfit, desc); err != nil {
				return err
			}
			if owner.ReferrerID != nil {
				if err := profitShareTx(tx, *owner.ReferrerID, bot.DailyProfit, bot.ID); err != nil {
					return err
				}
			}
		}

		bot.TotalProfit += bot.DailyProfit * float64(missing)
		bot.AccruedDays += missing
		if bot.AccruedDays >= durationDays || !now.Before(bot.EndDate) {
			bot.Status = models.BotStatusExpired
		}
		if err := tx.Save(&bot).Error; err != nil {
			return err
		}

		credited = missing
		return nil
	})
	if err != nil {
		return 0, wrapTxErr(err)
	}
	return credited, nil
}

// StartAccrualScheduler runs the daily sweep every 24 hours.
func StartAccrualScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			credited, err := RunDailyAccrual(time.Now())
			if err != nil {
				zap.L().Error("daily accrual sweep failed", zap.Error(err))
				return
			}
			zap.L().Info("daily accrual sweep finished", zap.Int("credits", credited))
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
