package user

import (
	"errors"
	"net/http"
	"strconv"

	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListUsers returns a paginated view of all accounts.
func ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := services.FindUsers(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load users"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	}))
}

// SetStatus blocks or unblocks an account.
func SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return
	}

	var req SetStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.SetUserStatus(uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update user status"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User status updated", nil))
}
