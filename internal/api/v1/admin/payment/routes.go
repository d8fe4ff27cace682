package payment

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/payment-methods", List)
	router.POST("/payment-methods", Create)
	router.PATCH("/payment-methods/:id", Update)
	router.DELETE("/payment-methods/:id", Delete)
}
