package services

import (
	"sync"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"go.uber.org/zap"
)

type notificationEvent struct {
	UserID  uint
	Title   string
	Message string
	Link    string
}

var (
	notifyQueue  = make(chan notificationEvent, 256)
	notifyWorker sync.Once
)

// StartNotifier launches the background worker that drains the notification
// queue into the store. Safe to call more than once.
func StartNotifier() {
	notifyWorker.Do(func() {
		go func() {
			for ev := range notifyQueue {
				n := models.Notification{
					UserID:  ev.UserID,
					Title:   ev.Title,
					Message: ev.Message,
					Link:    ev.Link,
				}
				if err := database.DB.Create(&n).Error; err != nil {
					zap.L().Error("failed to persist notification",
						zap.Uint("user_id", ev.UserID),
						zap.String("title", ev.Title),
						zap.Error(err))
				}
			}
		}()
	})
}

// Notify enqueues a best-effort notification. It never blocks and never
// fails the calling business operation: if the queue is full the event is
// dropped and logged.
func Notify(userID uint, title, message, link string) {
	ev := notificationEvent{UserID: userID, Title: title, Message: message, Link: link}
	select {
	case notifyQueue <- ev:
	default:
		zap.L().Warn("notification queue full, dropping event",
			zap.Uint("user_id", userID),
			zap.String("title", title))
	}
}

// FindNotifications returns a user's notifications, newest first.
func FindNotifications(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flags a single notification as read.
func MarkNotificationRead(userID, notificationID uint) error {
	return database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true).Error
}
