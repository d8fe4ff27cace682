package banner

import (
	"errors"
	"net/http"
	"strconv"

	"cbots-backend/config"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Upload stores a banner image and registers it. Admins can alternatively
// register an already-hosted image with CreateFromURL.
func Upload(c *gin.Context) {
	file, err := c.FormFile("banner_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Banner image file is required"))
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load configuration"))
		return
	}

	ref, err := utils.SaveUpload(c, file, cfg.UploadDir, "banners")
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to store banner image"))
		return
	}

	banner, err := services.CreateBanner(ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create banner"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Banner added!", banner))
}

func CreateFromURL(c *gin.Context) {
	var req CreateBannerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	banner, err := services.CreateBanner(req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create banner"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Banner added!", banner))
}

func Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid banner ID"))
		return
	}

	if err := services.DeleteBanner(uint(id)); err != nil {
		if errors.Is(err, services.ErrBannerNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete banner"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Banner deleted", nil))
}
