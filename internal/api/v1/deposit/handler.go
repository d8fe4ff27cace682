package deposit

import (
	"errors"
	"net/http"
	"strconv"

	"cbots-backend/config"
	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Submit records a deposit claim with its proof-of-payment image.
func Submit(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "A positive amount is required"))
		return
	}

	file, err := c.FormFile("proof_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Proof of payment image is required"))
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load configuration"))
		return
	}

	proofRef, err := utils.SaveUpload(c, file, cfg.UploadDir, "proofs")
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to store proof image"))
		return
	}

	var paymentMethodID *uint
	if raw := c.PostForm("payment_method_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			v := uint(id)
			paymentMethodID = &v
		}
	}

	request, err := services.SubmitDeposit(u.ID, amount, proofRef, paymentMethodID)
	if err != nil {
		mapRequestErr(c, err, "Failed to submit deposit request")
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Deposit request submitted successfully!", request))
}

// MyDeposits lists the caller's deposit requests.
func MyDeposits(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	deposits, total, err := services.FindDeposits(services.DepositFilter{
		UserID: &u.ID,
		Page:   1,
		Limit:  50,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load deposit requests"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Deposit requests retrieved successfully", gin.H{
		"deposits": deposits,
		"total":    total,
	}))
}

// mapRequestErr translates lifecycle errors shared by user-facing handlers.
func mapRequestErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrProofRequired):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, services.ErrConflictRetry):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, fallback))
	}
}
