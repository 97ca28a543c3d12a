package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

func SetupConnectionRouter(e *echo.Echo, connectionHandler *handler.ConnectionHandler, authMiddleware *middleware.AuthMiddleware) {
	connections := e.Group("/v1/connections")
	connections.Use(authMiddleware.Authenticate)

	connections.POST("", connectionHandler.RequestConnection)
	connections.GET("", connectionHandler.ListConnections)
	connections.GET("/:id", connectionHandler.GetConnection)
	connections.POST("/:id/accept", connectionHandler.AcceptConnection)
	connections.POST("/:id/reject", connectionHandler.RejectConnection)
	connections.DELETE("/:id", connectionHandler.RemoveConnection)
}
