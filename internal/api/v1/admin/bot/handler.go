package bot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func ListBotTypes(c *gin.Context) {
	botTypes, err := services.GetBotTypes(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load bot types"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bot types retrieved successfully", botTypes))
}

func CreateBotType(c *gin.Context) {
	var req CreateBotTypeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	botType, err := services.CreateBotType(req.Name, req.Cost, req.DailyProfit, req.DurationDays)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create bot type"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Bot type created", botType))
}

func UpdateBotType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid bot type ID"))
		return
	}

	var req UpdateBotTypeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}
	if req.DailyProfit != nil {
		updates["daily_profit"] = *req.DailyProfit
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	botType, err := services.UpdateBotType(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrBotTypeNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update bot type"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bot type updated", botType))
}

func DeleteBotType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid bot type ID"))
		return
	}

	if err := services.DeleteBotType(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete bot type"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bot type deleted", nil))
}

// RunAccrual triggers the daily profit sweep by hand, e.g. after downtime.
// The sweep is idempotent per day, so an extra run never double-credits.
func RunAccrual(c *gin.Context) {
	credited, err := services.RunDailyAccrual(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Accrual sweep failed"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Accrual sweep finished", gin.H{
		"credits": credited,
	}))
}
