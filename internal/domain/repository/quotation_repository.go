package repository

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
)

type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	ListByServiceRequest(ctx context.Context, serviceRequestID string) ([]*entity.Quotation, error)

	// ListByParticipant returns quotations where the user is either the
	// vendor or the customer, optionally filtered by status.
	ListByParticipant(ctx context.Context, userID string, statuses []string) ([]*entity.Quotation, error)
}

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *entity.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error)
	Update(ctx context.Context, request *entity.ServiceRequest) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.ServiceRequest, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error)
}
