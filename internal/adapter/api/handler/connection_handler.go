package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
)

type ConnectionHandler struct {
	connectionUseCase *usecase.ConnectionUseCase
}

func NewConnectionHandler(connectionUseCase *usecase.ConnectionUseCase) *ConnectionHandler {
	return &ConnectionHandler{
		connectionUseCase: connectionUseCase,
	}
}

type requestConnectionRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}

func (h *ConnectionHandler) RequestConnection(c echo.Context) error {
	var req requestConnectionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	connection, err := h.connectionUseCase.RequestConnection(c.Request().Context(), userID, req.ReceiverID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, connection)
}

func (h *ConnectionHandler) AcceptConnection(c echo.Context) error {
	userID := c.Get("uid").(string)

	connection, err := h.connectionUseCase.AcceptConnection(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, connection)
}

func (h *ConnectionHandler) RejectConnection(c echo.Context) error {
	userID := c.Get("uid").(string)

	connection, err := h.connectionUseCase.RejectConnection(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, connection)
}

func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	userID := c.Get("uid").(string)

	connection, err := h.connectionUseCase.RemoveConnection(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, connection)
}

func (h *ConnectionHandler) GetConnection(c echo.Context) error {
	userID := c.Get("uid").(string)

	connection, err := h.connectionUseCase.GetConnection(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, connection)
}

func (h *ConnectionHandler) ListConnections(c echo.Context) error {
	userID := c.Get("uid").(string)

	connections, err := h.connectionUseCase.ListConnections(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, connections)
}
