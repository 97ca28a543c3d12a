package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
	"github.com/ShreyasChakki/Servon-sub001/pkg/utils"
)

type ServiceRequestHandler struct {
	serviceRequestUseCase *usecase.ServiceRequestUseCase
}

func NewServiceRequestHandler(serviceRequestUseCase *usecase.ServiceRequestUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{
		serviceRequestUseCase: serviceRequestUseCase,
	}
}

type createServiceRequestRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Budget      float64 `json:"budget" validate:"omitempty,gt=0"`
}

func (h *ServiceRequestHandler) CreateServiceRequest(c echo.Context) error {
	var req createServiceRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.serviceRequestUseCase.CreateServiceRequest(c.Request().Context(), userID, usecase.CreateServiceRequestInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *ServiceRequestHandler) GetServiceRequest(c echo.Context) error {
	request, err := h.serviceRequestUseCase.GetServiceRequest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *ServiceRequestHandler) UpdateServiceRequest(c echo.Context) error {
	var req createServiceRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.serviceRequestUseCase.UpdateServiceRequest(c.Request().Context(), userID, c.Param("id"), usecase.UpdateServiceRequestInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *ServiceRequestHandler) CloseServiceRequest(c echo.Context) error {
	userID := c.Get("uid").(string)

	request, err := h.serviceRequestUseCase.CloseServiceRequest(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *ServiceRequestHandler) ListMyServiceRequests(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	requests, err := h.serviceRequestUseCase.ListMyServiceRequests(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, params.Page, params.PageSize, len(requests) == params.PageSize)
}

// ListOpenServiceRequests is the board vendors browse.
func (h *ServiceRequestHandler) ListOpenServiceRequests(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	requests, err := h.serviceRequestUseCase.ListOpenServiceRequests(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, params.Page, params.PageSize, len(requests) == params.PageSize)
}
