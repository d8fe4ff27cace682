package deposit

import (
	"errors"
	"net/http"
	"strconv"

	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListPending returns deposit requests awaiting review.
func ListPending(c *gin.Context) {
	status := models.RequestStatusPending
	deposits, total, err := services.FindDeposits(services.DepositFilter{
		Status: &status,
		Page:   1,
		Limit:  100,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load pending deposits"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Pending deposits retrieved successfully", gin.H{
		"deposits": deposits,
		"total":    total,
	}))
}

// Approve credits the claimed amount. The pending-status guard makes a second
// call return 409 without double-crediting.
func Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid deposit ID"))
		return
	}

	if err := services.ApproveDeposit(uint(id)); err != nil {
		mapLifecycleErr(c, err, "Failed to approve deposit")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Deposit approved!", nil))
}

func Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid deposit ID"))
		return
	}

	var req RejectRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.RejectDeposit(uint(id), req.Reason); err != nil {
		mapLifecycleErr(c, err, "Failed to reject deposit")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Deposit rejected.", nil))
}

func mapLifecycleErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrDepositNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.Is(err, services.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
	case errors.Is(err, services.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, services.ErrConflictRetry):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, fallback))
	}
}
