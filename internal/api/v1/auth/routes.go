package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/register", Register)
	router.POST("/auth/verify-email", VerifyEmail)
	router.POST("/auth/login", Login)
	router.POST("/auth/logout", Logout)
}
