package bot

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/bot-types", ListBotTypes)
	router.POST("/bot-types", CreateBotType)
	router.PATCH("/bot-types/:id", UpdateBotType)
	router.DELETE("/bot-types/:id", DeleteBotType)
	router.POST("/accrual/run", RunAccrual)
}
