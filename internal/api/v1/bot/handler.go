package bot

import (
	"errors"
	"net/http"

	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Catalog lists the purchasable bot types.
func Catalog(c *gin.Context) {
	botTypes, err := services.GetBotTypes(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load bot catalog"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bot catalog retrieved successfully", botTypes))
}

// Purchase buys a bot from the catalog and activates it.
func Purchase(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	var req PurchaseRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	activeBot, err := services.PurchaseBot(u.ID, req.BotTypeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBotTypeNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrBotTypeDisabled), errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrConflictRetry):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to purchase bot"))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Bot purchased successfully!", activeBot))
}

// MyBots lists the caller's bot instances.
func MyBots(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	bots, err := services.FindActiveBots(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load bots"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bots retrieved successfully", bots))
}
