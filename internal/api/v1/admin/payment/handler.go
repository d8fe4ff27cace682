package payment

import (
	"errors"
	"net/http"
	"strconv"

	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func List(c *gin.Context) {
	methods, err := services.GetPaymentMethods(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load payment methods"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment methods retrieved successfully", methods))
}

func Create(c *gin.Context) {
	var req CreatePaymentMethodRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	method, err := services.CreatePaymentMethod(req.Name, req.Details, req.Enabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create payment method"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Payment method created", method))
}

func Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid payment method ID"))
		return
	}

	var req UpdatePaymentMethodRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	method, err := services.UpdatePaymentMethod(uint(id), req.Name, req.Details, req.Enabled)
	if err != nil {
		if errors.Is(err, services.ErrPaymentMethodNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update payment method"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment method updated", method))
}

func Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid payment method ID"))
		return
	}

	if err := services.DeletePaymentMethod(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete payment method"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment method deleted", nil))
}
