package usecase

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

type ServiceRequestUseCase struct {
	requestRepo repository.ServiceRequestRepository
	userRepo    repository.UserRepository
}

func NewServiceRequestUseCase(
	requestRepo repository.ServiceRequestRepository,
	userRepo repository.UserRepository,
) *ServiceRequestUseCase {
	return &ServiceRequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

type CreateServiceRequestInput struct {
	Title       string
	Description string
	Category    string
	Budget      float64
}

func (uc *ServiceRequestUseCase) CreateServiceRequest(ctx context.Context, customerID string, input CreateServiceRequestInput) (*entity.ServiceRequest, error) {
	customer, err := uc.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Role != entity.RoleCustomer {
		return nil, errors.Forbidden("Only customers can post service requests", nil)
	}

	request := &entity.ServiceRequest{
		CustomerID:  customerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Budget:      input.Budget,
		Status:      entity.ServiceRequestOpen,
	}
	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (uc *ServiceRequestUseCase) GetServiceRequest(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	return uc.requestRepo.GetByID(ctx, id)
}

type UpdateServiceRequestInput struct {
	Title       string
	Description string
	Category    string
	Budget      float64
}

func (uc *ServiceRequestUseCase) UpdateServiceRequest(ctx context.Context, customerID, id string, input UpdateServiceRequestInput) (*entity.ServiceRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, errors.Forbidden("You do not own this service request", nil)
	}
	if request.Status != entity.ServiceRequestOpen {
		return nil, errors.Conflict("Service request is closed")
	}

	request.Title = input.Title
	request.Description = input.Description
	request.Category = input.Category
	request.Budget = input.Budget
	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// CloseServiceRequest takes the request off the open board. Closing an
// already-closed request is a no-op.
func (uc *ServiceRequestUseCase) CloseServiceRequest(ctx context.Context, customerID, id string) (*entity.ServiceRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, errors.Forbidden("You do not own this service request", nil)
	}
	if request.Status == entity.ServiceRequestClosed {
		return request, nil
	}

	request.Status = entity.ServiceRequestClosed
	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (uc *ServiceRequestUseCase) ListMyServiceRequests(ctx context.Context, customerID string, limit, offset int) ([]*entity.ServiceRequest, error) {
	return uc.requestRepo.ListByCustomer(ctx, customerID, limit, offset)
}

// ListOpenServiceRequests is the board vendors browse for work.
func (uc *ServiceRequestUseCase) ListOpenServiceRequests(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error) {
	return uc.requestRepo.ListOpen(ctx, limit, offset)
}
