package repository

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
)

type ConnectionRepository interface {
	Create(ctx context.Context, connection *entity.Connection) error
	GetByID(ctx context.Context, id string) (*entity.Connection, error)
	Update(ctx context.Context, connection *entity.Connection) error

	// GetByPair returns the most recent connection between the two
	// vendors regardless of which side requested it.
	GetByPair(ctx context.Context, userA, userB string) (*entity.Connection, error)

	// ListByParticipant returns connections involving the user,
	// optionally filtered by status.
	ListByParticipant(ctx context.Context, userID string, status string) ([]*entity.Connection, error)
}
