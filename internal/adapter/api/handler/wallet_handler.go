package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
	"github.com/ShreyasChakki/Servon-sub001/pkg/utils"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID := c.Get("uid").(string)

	wallet, err := h.walletUseCase.GetWallet(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wallet)
}

type topupRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference string  `json:"reference" validate:"required"`
}

func (h *WalletHandler) Topup(c echo.Context) error {
	var req topupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	transaction, err := h.walletUseCase.Topup(c.Request().Context(), userID, req.Amount, req.Reference)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, transaction)
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	transactions, err := h.walletUseCase.ListTransactions(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, transactions, params.Page, params.PageSize, len(transactions) == params.PageSize)
}
