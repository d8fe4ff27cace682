package withdrawal

import (
	"errors"
	"net/http"

	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Submit requests a withdrawal; the amount is held immediately.
func Submit(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	var req SubmitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	request, err := services.SubmitWithdrawal(u.ID, req.Amount, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrAddressRequired):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrConflictRetry):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to submit withdrawal request"))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Withdrawal request submitted successfully!", request))
}

// MyWithdrawals lists the caller's withdrawal requests.
func MyWithdrawals(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	withdrawals, total, err := services.FindWithdrawals(services.WithdrawalFilter{
		UserID: &u.ID,
		Page:   1,
		Limit:  50,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load withdrawal requests"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Withdrawal requests retrieved successfully", gin.H{
		"withdrawals": withdrawals,
		"total":       total,
	}))
}
