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

type firestoreConnectionRepository struct {
	client *firestore.Client
}

func NewFirestoreConnectionRepository(client *firestore.Client) repository.ConnectionRepository {
	return &firestoreConnectionRepository{client: client}
}

func (r *firestoreConnectionRepository) Create(ctx context.Context, connection *entity.Connection) error {
	if connection.ID == "" {
		connection.ID = uuid.New().String()
	}
	now := time.Now()
	connection.CreatedAt = now
	connection.UpdatedAt = now

	_, err := r.client.Collection("connections").Doc(connection.ID).Set(ctx, connection)
	if err != nil {
		return errors.Internal("Failed to create connection", err)
	}

	return nil
}

func (r *firestoreConnectionRepository) GetByID(ctx context.Context, id string) (*entity.Connection, error) {
	doc, err := r.client.Collection("connections").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Connection", err)
		}
		return nil, errors.Internal("Failed to get connection", err)
	}

	var connection entity.Connection
	if err := doc.DataTo(&connection); err != nil {
		return nil, errors.Internal("Failed to parse connection data", err)
	}

	return &connection, nil
}

func (r *firestoreConnectionRepository) Update(ctx context.Context, connection *entity.Connection) error {
	connection.UpdatedAt = time.Now()

	_, err := r.client.Collection("connections").Doc(connection.ID).Set(ctx, connection)
	if err != nil {
		return errors.Internal("Failed to update connection", err)
	}

	return nil
}

func (r *firestoreConnectionRepository) GetByPair(ctx context.Context, userA, userB string) (*entity.Connection, error) {
	// Both orientations of the pair are checked; the newest record wins.
	var latest *entity.Connection

	pairs := [][2]string{{userA, userB}, {userB, userA}}
	for _, pair := range pairs {
		iter := r.client.Collection("connections").
			Where("requesterId", "==", pair[0]).
			Where("receiverId", "==", pair[1]).
			OrderBy("createdAt", firestore.Desc).
			Limit(1).
			Documents(ctx)

		doc, err := iter.Next()
		if err == iterator.Done {
			continue
		}
		if err != nil {
			return nil, errors.Internal("Failed to query connection pair", err)
		}

		var connection entity.Connection
		if err := doc.DataTo(&connection); err != nil {
			continue
		}
		if latest == nil || connection.CreatedAt.After(latest.CreatedAt) {
			latest = &connection
		}
	}

	if latest == nil {
		return nil, errors.NotFound("Connection", nil)
	}

	return latest, nil
}

func (r *firestoreConnectionRepository) ListByParticipant(ctx context.Context, userID string, status string) ([]*entity.Connection, error) {
	var connections []*entity.Connection
	seen := make(map[string]bool)

	for _, field := range []string{"requesterId", "receiverId"} {
		query := r.client.Collection("connections").Where(field, "==", userID)
		if status != "" {
			query = query.Where("status", "==", status)
		}

		iter := query.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, errors.Internal("Failed to iterate connections", err)
			}

			var connection entity.Connection
			if err := doc.DataTo(&connection); err != nil {
				continue
			}
			if seen[connection.ID] {
				continue
			}
			seen[connection.ID] = true
			connections = append(connections, &connection)
		}
	}

	return connections, nil
}
