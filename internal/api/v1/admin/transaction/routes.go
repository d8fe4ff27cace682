package transaction

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", List)
	router.GET("/transactions/export", Export)
}
