package catalog

import (
	"net/http"

	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Banners is public: the landing page renders these without a session.
func Banners(c *gin.Context) {
	banners, err := services.GetBanners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load banners"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Banners retrieved successfully", banners))
}

// PaymentMethods lists enabled payment methods users can deposit through.
func PaymentMethods(c *gin.Context) {
	methods, err := services.GetPaymentMethods(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load payment methods"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment methods retrieved successfully", methods))
}
