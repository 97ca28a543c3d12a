package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
	ws "github.com/ShreyasChakki/Servon-sub001/internal/infrastructure/websocket"
	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

type WebSocketHandler struct {
	wsManager           *ws.Manager
	conversationUseCase *usecase.ConversationUseCase
	authMiddleware      *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict this in production
	},
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	conversationUseCase *usecase.ConversationUseCase,
	authMiddleware *middleware.AuthMiddleware,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:           wsManager,
		conversationUseCase: conversationUseCase,
		authMiddleware:      authMiddleware,
	}
}

// HandleWebSocket upgrades the connection and runs the session. Browser
// WebSocket clients cannot set headers, so a ?token= query parameter is
// accepted alongside the normal Bearer flow.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		token := c.QueryParam("token")
		if token == "" {
			return errors.Unauthorized("Authentication required", nil)
		}
		uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
		if err != nil {
			return errors.Unauthorized("Invalid or expired token", err)
		}
		userID = uid
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager, h.handleEvent)
	go client.WritePump()

	return nil
}

// handleEvent dispatches one inbound frame. Failures go back to the
// sending session as error events; the connection stays up.
func (h *WebSocketHandler) handleEvent(client *ws.Client, raw []byte) {
	var event ws.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		h.sendError(client, "Malformed event")
		return
	}

	// The HTTP request context dies with the upgrade; session events run
	// on their own context.
	ctx := context.Background()

	switch event.Type {
	case ws.EventPing:
		h.send(client, ws.Encode(ws.EventPong, nil))

	case ws.EventJoinConversation:
		var payload ws.JoinConversationPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.ConversationID == "" {
			h.sendError(client, "conversation_id is required")
			return
		}
		if _, err := h.conversationUseCase.GetConversationInfo(ctx, client.UserID, payload.ConversationID); err != nil {
			h.sendError(client, "Cannot join conversation")
			return
		}
		h.wsManager.JoinConversation(payload.ConversationID, client)

	case ws.EventLeaveConversation:
		var payload ws.JoinConversationPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.ConversationID == "" {
			return
		}
		h.wsManager.LeaveConversation(payload.ConversationID, client)

	case ws.EventSendMessage:
		var payload ws.SendMessagePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			h.sendError(client, "Malformed send_message payload")
			return
		}
		if _, err := h.conversationUseCase.SendToConversation(ctx, client.UserID, payload.ConversationID, payload.Content, payload.Type); err != nil {
			h.sendError(client, errorMessage(err))
			return
		}

	case ws.EventTyping:
		var payload ws.TypingPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return
		}
		if err := h.conversationUseCase.Typing(ctx, client.UserID, payload.ConversationID, payload.IsTyping); err != nil {
			logger.Debug("Typing event rejected for %s: %v", client.UserID, err)
		}

	default:
		h.sendError(client, "Unknown event type")
	}
}

func (h *WebSocketHandler) send(client *ws.Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
	}
}

func (h *WebSocketHandler) sendError(client *ws.Client, message string) {
	h.send(client, ws.Encode(ws.EventError, ws.ErrorPayload{Message: message}))
}

func errorMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "Failed to process event"
}
