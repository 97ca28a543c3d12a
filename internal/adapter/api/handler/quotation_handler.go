package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
)

type QuotationHandler struct {
	quotationUseCase *usecase.QuotationUseCase
}

func NewQuotationHandler(quotationUseCase *usecase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{
		quotationUseCase: quotationUseCase,
	}
}

type createQuotationRequest struct {
	ServiceRequestID string  `json:"service_request_id" validate:"required"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	Note             string  `json:"note"`
}

func (h *QuotationHandler) CreateQuotation(c echo.Context) error {
	var req createQuotationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	quotation, err := h.quotationUseCase.CreateQuotation(c.Request().Context(), userID, usecase.CreateQuotationInput{
		ServiceRequestID: req.ServiceRequestID,
		Price:            req.Price,
		Note:             req.Note,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, quotation)
}

func (h *QuotationHandler) GetQuotation(c echo.Context) error {
	userID := c.Get("uid").(string)

	quotation, err := h.quotationUseCase.GetQuotation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quotation)
}

func (h *QuotationHandler) AcceptQuotation(c echo.Context) error {
	userID := c.Get("uid").(string)

	quotation, err := h.quotationUseCase.AcceptQuotation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quotation)
}

func (h *QuotationHandler) RejectQuotation(c echo.Context) error {
	userID := c.Get("uid").(string)

	quotation, err := h.quotationUseCase.RejectQuotation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quotation)
}

func (h *QuotationHandler) ListQuotationsForRequest(c echo.Context) error {
	userID := c.Get("uid").(string)

	quotations, err := h.quotationUseCase.ListQuotationsForRequest(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quotations)
}

func (h *QuotationHandler) ListMyQuotations(c echo.Context) error {
	userID := c.Get("uid").(string)

	quotations, err := h.quotationUseCase.ListMyQuotations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quotations)
}
