package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

// SetupConversationRouter wires the inbox, history, and the typed send
// endpoints.
func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("", conversationHandler.ListConversations)
	conversations.GET("/:id/messages", conversationHandler.GetMessages)
	conversations.GET("/:id/info", conversationHandler.GetConversationInfo)
	conversations.PUT("/:id/read", conversationHandler.MarkConversationRead)

	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)

	messages.POST("/quotation", messageHandler.SendQuotationMessage)
	messages.POST("/connection", messageHandler.SendConnectionMessage)
	messages.POST("/direct", messageHandler.SendDirectMessage)
}
