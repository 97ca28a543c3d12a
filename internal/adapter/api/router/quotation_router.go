package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

func SetupQuotationRouter(e *echo.Echo, quotationHandler *handler.QuotationHandler, authMiddleware *middleware.AuthMiddleware) {
	quotations := e.Group("/v1/quotations")
	quotations.Use(authMiddleware.Authenticate)

	quotations.POST("", quotationHandler.CreateQuotation)
	quotations.GET("/mine", quotationHandler.ListMyQuotations)
	quotations.GET("/:id", quotationHandler.GetQuotation)
	quotations.POST("/:id/accept", quotationHandler.AcceptQuotation)
	quotations.POST("/:id/reject", quotationHandler.RejectQuotation)
}
