package withdrawal

import (
	"errors"
	"net/http"
	"strconv"

	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func ListPending(c *gin.Context) {
	status := models.RequestStatusPending
	withdrawals, total, err := services.FindWithdrawals(services.WithdrawalFilter{
		Status: &status,
		Page:   1,
		Limit:  100,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load pending withdrawals"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Pending withdrawals retrieved successfully", gin.H{
		"withdrawals": withdrawals,
		"total":       total,
	}))
}

// Approve finalizes the withdrawal; funds were already held at submit time.
func Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid withdrawal ID"))
		return
	}

	var req ApproveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.ApproveWithdrawal(uint(id), req.ProofOfSendURL); err != nil {
		mapLifecycleErr(c, err, "Failed to approve withdrawal")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Withdrawal approved!", nil))
}

// Reject refunds the held amount exactly once.
func Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid withdrawal ID"))
		return
	}

	var req RejectRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.RejectWithdrawal(uint(id), req.Reason); err != nil {
		mapLifecycleErr(c, err, "Failed to reject withdrawal")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Withdrawal rejected and refunded.", nil))
}

func mapLifecycleErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrWithdrawalNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.Is(err, services.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
	case errors.Is(err, services.ErrReasonRequired), errors.Is(err, services.ErrProofOfSendRequired):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, services.ErrConflictRetry):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, fallback))
	}
}
