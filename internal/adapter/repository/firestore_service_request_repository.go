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

type firestoreServiceRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreServiceRequestRepository(client *firestore.Client) repository.ServiceRequestRepository {
	return &firestoreServiceRequestRepository{client: client}
}

func (r *firestoreServiceRequestRepository) Create(ctx context.Context, request *entity.ServiceRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.client.Collection("serviceRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create service request", err)
	}

	return nil
}

func (r *firestoreServiceRequestRepository) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	doc, err := r.client.Collection("serviceRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Service request", err)
		}
		return nil, errors.Internal("Failed to get service request", err)
	}

	var request entity.ServiceRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse service request data", err)
	}

	return &request, nil
}

func (r *firestoreServiceRequestRepository) Update(ctx context.Context, request *entity.ServiceRequest) error {
	request.UpdatedAt = time.Now()

	_, err := r.client.Collection("serviceRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update service request", err)
	}

	return nil
}

func (r *firestoreServiceRequestRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.ServiceRequest, error) {
	query := r.client.Collection("serviceRequests").
		Where("customerId", "==", customerID).
		OrderBy("createdAt", firestore.Desc)

	return collectServiceRequests(paginate(query, limit, offset).Documents(ctx))
}

func (r *firestoreServiceRequestRepository) ListOpen(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error) {
	query := r.client.Collection("serviceRequests").
		Where("status", "==", entity.ServiceRequestOpen).
		OrderBy("createdAt", firestore.Desc)

	return collectServiceRequests(paginate(query, limit, offset).Documents(ctx))
}

func paginate(query firestore.Query, limit, offset int) firestore.Query {
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

func collectServiceRequests(iter *firestore.DocumentIterator) ([]*entity.ServiceRequest, error) {
	var requests []*entity.ServiceRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate service requests", err)
		}

		var request entity.ServiceRequest
		if err := doc.DataTo(&request); err != nil {
			continue
		}
		requests = append(requests, &request)
	}

	return requests, nil
}
