package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

func SetupServiceRequestRouter(e *echo.Echo, serviceRequestHandler *handler.ServiceRequestHandler, quotationHandler *handler.QuotationHandler, authMiddleware *middleware.AuthMiddleware) {
	requests := e.Group("/v1/service-requests")
	requests.Use(authMiddleware.Authenticate)

	requests.POST("", serviceRequestHandler.CreateServiceRequest)
	requests.GET("", serviceRequestHandler.ListOpenServiceRequests)
	requests.GET("/mine", serviceRequestHandler.ListMyServiceRequests)
	requests.GET("/:id", serviceRequestHandler.GetServiceRequest)
	requests.PUT("/:id", serviceRequestHandler.UpdateServiceRequest)
	requests.PUT("/:id/close", serviceRequestHandler.CloseServiceRequest)

	// Offers on a request, visible to its owner.
	requests.GET("/:id/quotations", quotationHandler.ListQuotationsForRequest)
}
