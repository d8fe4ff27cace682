package bot

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/bots/catalog", Catalog)
	router.POST("/bots/purchase", Purchase)
	router.GET("/bots", MyBots)
}
