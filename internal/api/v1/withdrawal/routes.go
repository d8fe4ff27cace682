package withdrawal

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/withdrawals", Submit)
	router.GET("/withdrawals", MyWithdrawals)
}
