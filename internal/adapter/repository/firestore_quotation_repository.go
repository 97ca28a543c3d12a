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

type firestoreQuotationRepository struct {
	client *firestore.Client
}

func NewFirestoreQuotationRepository(client *firestore.Client) repository.QuotationRepository {
	return &firestoreQuotationRepository{client: client}
}

func (r *firestoreQuotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	if quotation.ID == "" {
		quotation.ID = uuid.New().String()
	}
	now := time.Now()
	quotation.CreatedAt = now
	quotation.UpdatedAt = now

	_, err := r.client.Collection("quotations").Doc(quotation.ID).Set(ctx, quotation)
	if err != nil {
		return errors.Internal("Failed to create quotation", err)
	}

	return nil
}

func (r *firestoreQuotationRepository) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	doc, err := r.client.Collection("quotations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Quotation", err)
		}
		return nil, errors.Internal("Failed to get quotation", err)
	}

	var quotation entity.Quotation
	if err := doc.DataTo(&quotation); err != nil {
		return nil, errors.Internal("Failed to parse quotation data", err)
	}

	return &quotation, nil
}

func (r *firestoreQuotationRepository) Update(ctx context.Context, quotation *entity.Quotation) error {
	quotation.UpdatedAt = time.Now()

	_, err := r.client.Collection("quotations").Doc(quotation.ID).Set(ctx, quotation)
	if err != nil {
		return errors.Internal("Failed to update quotation", err)
	}

	return nil
}

func (r *firestoreQuotationRepository) ListByServiceRequest(ctx context.Context, serviceRequestID string) ([]*entity.Quotation, error) {
	iter := r.client.Collection("quotations").
		Where("serviceRequestId", "==", serviceRequestID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	return collectQuotations(iter)
}

func (r *firestoreQuotationRepository) ListByParticipant(ctx context.Context, userID string, statuses []string) ([]*entity.Quotation, error) {
	// Firestore has no OR across fields, so the vendor and customer
	// sides are two queries merged in memory.
	var quotations []*entity.Quotation
	seen := make(map[string]bool)

	for _, field := range []string{"vendorId", "customerId"} {
		query := r.client.Collection("quotations").Where(field, "==", userID)
		if len(statuses) > 0 {
			query = query.Where("status", "in", statuses)
		}

		batch, err := collectQuotations(query.Documents(ctx))
		if err != nil {
			return nil, err
		}
		for _, q := range batch {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			quotations = append(quotations, q)
		}
	}

	return quotations, nil
}

func collectQuotations(iter *firestore.DocumentIterator) ([]*entity.Quotation, error) {
	var quotations []*entity.Quotation

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate quotations", err)
		}

		var quotation entity.Quotation
		if err := doc.DataTo(&quotation); err != nil {
			continue
		}
		quotations = append(quotations, &quotation)
	}

	return quotations, nil
}
