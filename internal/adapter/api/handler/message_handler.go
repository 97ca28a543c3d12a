package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
)

// MessageHandler exposes the typed send endpoints. Each variant resolves
// its own conversation from the relationship it references.
type MessageHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewMessageHandler(conversationUseCase *usecase.ConversationUseCase) *MessageHandler {
	return &MessageHandler{
		conversationUseCase: conversationUseCase,
	}
}

type sendQuotationMessageRequest struct {
	QuotationID string `json:"quotation_id" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=text image"`
}

type sendConnectionMessageRequest struct {
	ConnectionID string `json:"connection_id" validate:"required"`
	Content      string `json:"content" validate:"required"`
	Type         string `json:"type" validate:"omitempty,oneof=text image"`
}

type sendDirectMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=text image"`
}

func (h *MessageHandler) SendQuotationMessage(c echo.Context) error {
	var req sendQuotationMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.SendQuotationMessage(c.Request().Context(), userID, req.QuotationID, req.Content, req.Type)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) SendConnectionMessage(c echo.Context) error {
	var req sendConnectionMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.SendConnectionMessage(c.Request().Context(), userID, req.ConnectionID, req.Content, req.Type)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) SendDirectMessage(c echo.Context) error {
	var req sendDirectMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.SendDirectMessage(c.Request().Context(), userID, req.RecipientID, req.Content, req.Type)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
