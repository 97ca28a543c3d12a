package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	Conversation   *handler.ConversationHandler
	Message        *handler.MessageHandler
	WebSocket      *handler.WebSocketHandler
	ServiceRequest *handler.ServiceRequestHandler
	Quotation      *handler.QuotationHandler
	Connection     *handler.ConnectionHandler
	Advertisement  *handler.AdvertisementHandler
	Wallet         *handler.WalletHandler
	Admin          *handler.AdminHandler
	Health         *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupConversationRouter(e, h.Conversation, h.Message, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupServiceRequestRouter(e, h.ServiceRequest, h.Quotation, authMiddleware)
	SetupQuotationRouter(e, h.Quotation, authMiddleware)
	SetupConnectionRouter(e, h.Connection, authMiddleware)
	SetupAdvertisementRouter(e, h.Advertisement, authMiddleware)
	SetupWalletRouter(e, h.Wallet, authMiddleware)
	SetupAdminRouter(e, h.Admin, authMiddleware, adminMiddleware)
	SetupHealthRouter(e, h.Health)
}
