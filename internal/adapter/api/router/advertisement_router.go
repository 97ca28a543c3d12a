package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

func SetupAdvertisementRouter(e *echo.Echo, advertisementHandler *handler.AdvertisementHandler, authMiddleware *middleware.AuthMiddleware) {
	ads := e.Group("/v1/advertisements")
	ads.Use(authMiddleware.Authenticate)

	ads.POST("", advertisementHandler.CreateAdvertisement)
	ads.GET("", advertisementHandler.ListActiveAdvertisements)
	ads.GET("/mine", advertisementHandler.ListMyAdvertisements)
	ads.GET("/:id", advertisementHandler.GetAdvertisement)
	ads.POST("/:id/banner", advertisementHandler.UploadBanner)

	// Customer inquiries on an ad, and the vendor's view of them.
	ads.POST("/:id/requests", advertisementHandler.CreateAdRequest)
	ads.GET("/:id/requests", advertisementHandler.ListAdRequests)
}
