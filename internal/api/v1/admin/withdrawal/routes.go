package withdrawal

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/withdrawals/pending", ListPending)
	router.POST("/withdrawals/:id/approve", Approve)
	router.POST("/withdrawals/:id/reject", Reject)
}
