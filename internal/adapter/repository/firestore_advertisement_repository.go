package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

type firestoreAdvertisementRepository struct {
	client *firestore.Client
}

func NewFirestoreAdvertisementRepository(client *firestore.Client) repository.AdvertisementRepository {
	return &firestoreAdvertisementRepository{client: client}
}

func (r *firestoreAdvertisementRepository) Create(ctx context.Context, ad *entity.Advertisement) error {
	if ad.ID == "" {
		ad.ID = uuid.New().String()
	}
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	_, err := r.client.Collection("advertisements").Doc(ad.ID).Set(ctx, ad)
	if err != nil {
		return errors.Internal("Failed to create advertisement", err)
	}

	return nil
}

func (r *firestoreAdvertisementRepository) GetByID(ctx context.Context, id string) (*entity.Advertisement, error) {
	doc, err := r.client.Collection("advertisements").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Advertisement", err)
		}
		return nil, errors.Internal("Failed to get advertisement", err)
	}

	var ad entity.Advertisement
	if err := doc.DataTo(&ad); err != nil {
		return nil, errors.Internal("Failed to parse advertisement data", err)
	}

	return &ad, nil
}

func (r *firestoreAdvertisementRepository) Update(ctx context.Context, ad *entity.Advertisement) error {
	ad.UpdatedAt = time.Now()

	_, err := r.client.Collection("advertisements").Doc(ad.ID).Set(ctx, ad)
	if err != nil {
		return errors.Internal("Failed to update advertisement", err)
	}

	return nil
}

func (r *firestoreAdvertisementRepository) ListActive(ctx context.Context, limit, offset int) ([]*entity.Advertisement, error) {
	query := r.client.Collection("advertisements").
		Where("status", "==", entity.AdvertisementActive).
		OrderBy("createdAt", firestore.Desc)

	return collectAdvertisements(paginate(query, limit, offset).Documents(ctx))
}

func (r *firestoreAdvertisementRepository) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Advertisement, error) {
	query := r.client.Collection("advertisements").
		Where("vendorId", "==", vendorID).
		OrderBy("createdAt", firestore.Desc)

	return collectAdvertisements(query.Documents(ctx))
}

func (r *firestoreAdvertisementRepository) CreateAdRequest(ctx context.Context, request *entity.AdRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()

	_, err := r.client.Collection("adRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create ad request", err)
	}

	return nil
}

func (r *firestoreAdvertisementRepository) ListAdRequestsByAd(ctx context.Context, advertisementID string) ([]*entity.AdRequest, error) {
	iter := r.client.Collection("adRequests").
		Where("advertisementId", "==", advertisementID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var requests []*entity.AdRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate ad requests", err)
		}

		var request entity.AdRequest
		if err := doc.DataTo(&request); err != nil {
			continue
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func collectAdvertisements(iter *firestore.DocumentIterator) ([]*entity.Advertisement, error) {
	var ads []*entity.Advertisement

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate advertisements", err)
		}

		var ad entity.Advertisement
		if err := doc.DataTo(&ad); err != nil {
			continue
		}
		ads = append(ads, &ad)
	}

	return ads, nil
}
