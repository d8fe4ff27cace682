package user

import (
	"net/http"
	"strconv"

	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the caller's profile and most recent ledger entries.
func Dashboard(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	// Reload to pick up balance changes made after the auth cache was filled
	profile, transactions, err := services.GetDashboard(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load dashboard"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Dashboard retrieved successfully", DashboardResponse{
		User:         toUserResponse(profile),
		Transactions: toTransactionResponses(transactions),
	}))
}

func ListNotifications(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	notifications, err := services.FindNotifications(u.ID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load notifications"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notifications retrieved successfully", notifications))
}

func MarkNotificationRead(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid notification ID"))
		return
	}

	if err := services.MarkNotificationRead(u.ID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update notification"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notification marked as read", nil))
}
