package services

import (
	"testing"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_PersistsEvents(t *testing.T) {
	setupTestDB()
	user := seedUser("notified", 0)

	StartNotifier()
	Notify(user.ID, "Hello", "First message", "/dashboard")

	// The worker drains asynchronously
	find := func() *models.Notification {
		var n models.Notification
		err := database.DB.Where("user_id = ? AND title = ?", user.ID, "Hello").First(&n).Error
		if err != nil {
			return nil
		}
		return &n
	}
	assert.Eventually(t, func() bool { return find() != nil }, 2*time.Second, 10*time.Millisecond)

	n := find()
	if assert.NotNil(t, n) {
		assert.Equal(t, "First message", n.Message)
		assert.Equal(t, "/dashboard", n.Link)
		assert.False(t, n.Read)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	setupTestDB()
	user := seedUser("reader", 0)
	other := seedUser("other", 0)

	n := models.Notification{UserID: user.ID, Title: "Unread", Message: "msg"}
	database.DB.Create(&n)

	// Another user cannot mark it
	assert.NoError(t, MarkNotificationRead(other.ID, n.ID))
	var reloaded models.Notification
	database.DB.First(&reloaded, n.ID)
	assert.False(t, reloaded.Read)

	assert.NoError(t, MarkNotificationRead(user.ID, n.ID))
	database.DB.First(&reloaded, n.ID)
	assert.True(t, reloaded.Read)
}
