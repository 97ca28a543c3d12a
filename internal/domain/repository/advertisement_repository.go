package repository

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
)

type AdvertisementRepository interface {
	Create(ctx context.Context, ad *entity.Advertisement) error
	GetByID(ctx context.Context, id string) (*entity.Advertisement, error)
	Update(ctx context.Context, ad *entity.Advertisement) error
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Advertisement, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Advertisement, error)

	CreateAdRequest(ctx context.Context, request *entity.AdRequest) error
	ListAdRequestsByAd(ctx context.Context, advertisementID string) ([]*entity.AdRequest, error)
}
