package routes

import (
	"github.com/gin-gonic/gin"

	notificationhandlers "orbit/internal/interfaces/http/handlers/notification"
	"orbit/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *notificationhandlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", config.NotificationHandler.ListNotifications)
		notifications.GET("/unread-count", config.NotificationHandler.UnreadCount)
		notifications.POST("/:id/read", config.NotificationHandler.MarkRead)
	}
}
