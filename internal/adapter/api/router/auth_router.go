package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/v1/auth")
	auth.Use(middleware.AuthRateLimit())

	auth.POST("/register", authHandler.Register)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", authHandler.GetProfile)
	users.PUT("/me", authHandler.UpdateProfile)
}
