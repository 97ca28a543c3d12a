package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
	"github.com/ShreyasChakki/Servon-sub001/pkg/utils"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

// ListConversations returns the caller's inbox, most recent first.
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// GetMessages returns one page of conversation history. Viewing a page
// marks the caller's unread messages as read.
func (h *ConversationHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	conversationID := c.Param("id")
	params := utils.GetPaginationParams(c)

	messages, hasMore, err := h.conversationUseCase.GetMessages(c.Request().Context(), userID, conversationID, params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, params.Page, params.PageSize, hasMore)
}

func (h *ConversationHandler) GetConversationInfo(c echo.Context) error {
	userID := c.Get("uid").(string)
	conversationID := c.Param("id")

	info, err := h.conversationUseCase.GetConversationInfo(c.Request().Context(), userID, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, info)
}

func (h *ConversationHandler) MarkConversationRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	conversationID := c.Param("id")

	count, err := h.conversationUseCase.MarkConversationRead(c.Request().Context(), userID, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"conversation_id": conversationID,
		"marked_read":     count,
	})
}
