package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Role         string `json:"role" validate:"required,oneof=customer vendor"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		City:         req.City,
		Role:         req.Role,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.authUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.authUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		FullName:     req.FullName,
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		City:         req.City,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
