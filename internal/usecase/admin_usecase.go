package usecase

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

type AdminUseCase struct {
	userRepo repository.UserRepository
}

func NewAdminUseCase(userRepo repository.UserRepository) *AdminUseCase {
	return &AdminUseCase{userRepo: userRepo}
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return uc.userRepo.List(ctx, limit, offset)
}

// SetUserStatus suspends or reactivates an account. Admins cannot
// suspend other admins.
func (uc *AdminUseCase) SetUserStatus(ctx context.Context, userID, status string) (*entity.User, error) {
	if status != "active" && status != "suspended" {
		return nil, errors.BadRequest("Status must be active or suspended", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, errors.Forbidden("Cannot change status of an admin account", nil)
	}

	user.Status = status
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
