package catalog

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers endpoints that require no session.
func RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/banners", Banners)
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/payment-methods", PaymentMethods)
}
