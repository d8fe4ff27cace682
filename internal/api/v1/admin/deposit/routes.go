package deposit

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/deposits/pending", ListPending)
	router.POST("/deposits/:id/approve", Approve)
	router.POST("/deposits/:id/reject", Reject)
}
