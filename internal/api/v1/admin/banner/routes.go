package banner

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/banners/upload", Upload)
	router.POST("/banners/url", CreateFromURL)
	router.DELETE("/banners/:id", Delete)
}
