package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/user/dashboard", Dashboard)
	router.GET("/user/notifications", ListNotifications)
	router.PATCH("/user/notifications/:id/read", MarkNotificationRead)
}
