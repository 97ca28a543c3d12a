package usecase

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

type AuthUseCase struct {
	authClient    AuthClient
	userRepo      repository.UserRepository
	walletUseCase *WalletUseCase
}

func NewAuthUseCase(
	authClient AuthClient,
	userRepo repository.UserRepository,
	walletUseCase *WalletUseCase,
) *AuthUseCase {
	return &AuthUseCase{
		authClient:    authClient,
		userRepo:      userRepo,
		walletUseCase: walletUseCase,
	}
}

type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	BusinessName string
	Phone        string
	City         string
	Role         string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the identity, the profile, and the wallet in one go.
// Admin accounts are provisioned out of band, never self-registered.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role != entity.RoleCustomer && input.Role != entity.RoleVendor {
		return nil, errors.BadRequest("Role must be customer or vendor", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:           uid,
		Email:        input.Email,
		FullName:     input.FullName,
		BusinessName: input.BusinessName,
		Phone:        input.Phone,
		City:         input.City,
		Role:         input.Role,
		Status:       "active",
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := uc.walletUseCase.CreateWalletForUser(ctx, uid); err != nil {
		logger.Error("Failed to create wallet for %s: %v", uid, err)
	}

	token, err := uc.authClient.GenerateToken(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to generate token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FullName     string
	BusinessName string
	Phone        string
	City         string
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	user.BusinessName = input.BusinessName
	user.Phone = input.Phone
	user.City = input.City

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
