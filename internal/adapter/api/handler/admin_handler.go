package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
	"github.com/ShreyasChakki/Servon-sub001/pkg/utils"
)

// AdminHandler exposes platform oversight. Conversation access reuses
// the conversation use case, whose gate already grants admins read-only
// entry.
type AdminHandler struct {
	adminUseCase        *usecase.AdminUseCase
	conversationUseCase *usecase.ConversationUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, conversationUseCase *usecase.ConversationUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase:        adminUseCase,
		conversationUseCase: conversationUseCase,
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	users, err := h.adminUseCase.ListUsers(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, params.Page, params.PageSize, len(users) == params.PageSize)
}

type setUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var req setUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.SetUserStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// GetConversationMessages lets an admin review a disputed conversation.
func (h *AdminHandler) GetConversationMessages(c echo.Context) error {
	adminID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	messages, hasMore, err := h.conversationUseCase.GetMessages(c.Request().Context(), adminID, c.Param("id"), params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, params.Page, params.PageSize, hasMore)
}
