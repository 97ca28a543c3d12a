package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
	"github.com/ShreyasChakki/Servon-sub001/pkg/utils"
)

type AdvertisementHandler struct {
	advertisementUseCase *usecase.AdvertisementUseCase
}

func NewAdvertisementHandler(advertisementUseCase *usecase.AdvertisementUseCase) *AdvertisementHandler {
	return &AdvertisementHandler{
		advertisementUseCase: advertisementUseCase,
	}
}

type createAdvertisementRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Days        int    `json:"days" validate:"required,min=1,max=90"`
}

func (h *AdvertisementHandler) CreateAdvertisement(c echo.Context) error {
	var req createAdvertisementRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	ad, err := h.advertisementUseCase.CreateAdvertisement(c.Request().Context(), userID, usecase.CreateAdvertisementInput{
		Title:       req.Title,
		Description: req.Description,
		Days:        req.Days,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, ad)
}

// UploadBanner accepts a multipart "banner" file and stores it as the
// advertisement's banner image.
func (h *AdvertisementHandler) UploadBanner(c echo.Context) error {
	userID := c.Get("uid").(string)

	fileHeader, err := c.FormFile("banner")
	if err != nil {
		return response.Error(c, errors.BadRequest("Banner file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read banner file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	ad, err := h.advertisementUseCase.UploadBanner(c.Request().Context(), userID, c.Param("id"), file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ad)
}

func (h *AdvertisementHandler) ListActiveAdvertisements(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	ads, err := h.advertisementUseCase.ListActiveAdvertisements(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, ads, params.Page, params.PageSize, len(ads) == params.PageSize)
}

func (h *AdvertisementHandler) ListMyAdvertisements(c echo.Context) error {
	userID := c.Get("uid").(string)

	ads, err := h.advertisementUseCase.ListMyAdvertisements(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ads)
}

func (h *AdvertisementHandler) GetAdvertisement(c echo.Context) error {
	ad, err := h.advertisementUseCase.GetAdvertisement(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ad)
}

type createAdRequestRequest struct {
	Note string `json:"note"`
}

// CreateAdRequest records the caller's interest in an advertisement and
// opens the inquiry conversation with the vendor.
func (h *AdvertisementHandler) CreateAdRequest(c echo.Context) error {
	var req createAdRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.advertisementUseCase.CreateAdRequest(c.Request().Context(), userID, usecase.CreateAdRequestInput{
		AdvertisementID: c.Param("id"),
		Note:            req.Note,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *AdvertisementHandler) ListAdRequests(c echo.Context) error {
	userID := c.Get("uid").(string)

	requests, err := h.advertisementUseCase.ListAdRequests(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}
