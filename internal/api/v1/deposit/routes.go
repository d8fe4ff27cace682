package deposit

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/deposits", Submit)
	router.GET("/deposits", MyDeposits)
}
