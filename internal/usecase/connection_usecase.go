package usecase

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

type ConnectionUseCase struct {
	connectionRepo repository.ConnectionRepository
	userRepo       repository.UserRepository
	conversationUC *ConversationUseCase
}

func NewConnectionUseCase(
	connectionRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	conversationUC *ConversationUseCase,
) *ConnectionUseCase {
	return &ConnectionUseCase{
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		conversationUC: conversationUC,
	}
}

// RequestConnection creates a pending vendor-to-vendor link. A pair can
// hold at most one live connection; rejected or removed history does
// not block a fresh request.
func (uc *ConnectionUseCase) RequestConnection(ctx context.Context, requesterID, receiverID string) (*entity.Connection, error) {
	if requesterID == receiverID {
		return nil, errors.BadRequest("Cannot connect with yourself", nil)
	}

	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	receiver, err := uc.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if requester.Role != entity.RoleVendor || receiver.Role != entity.RoleVendor {
		return nil, errors.Forbidden("Connections are between vendors", nil)
	}

	existing, err := uc.connectionRepo.GetByPair(ctx, requesterID, receiverID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil && (existing.Status == entity.ConnectionPending || existing.Status == entity.ConnectionConnected) {
		return nil, errors.Conflict("A connection already exists between these vendors")
	}

	connection := &entity.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      entity.ConnectionPending,
	}
	if err := uc.connectionRepo.Create(ctx, connection); err != nil {
		return nil, err
	}

	return connection, nil
}

// AcceptConnection moves a pending connection to connected and seeds
// the conversation with a system notice so it shows up in both inboxes.
func (uc *ConnectionUseCase) AcceptConnection(ctx context.Context, userID, connectionID string) (*entity.Connection, error) {
	connection, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if connection.ReceiverID != userID {
		return nil, errors.Forbidden("Only the receiving vendor can accept", nil)
	}
	if connection.Status != entity.ConnectionPending {
		return nil, errors.Conflict("Connection is not pending")
	}

	connection.Status = entity.ConnectionConnected
	if err := uc.connectionRepo.Update(ctx, connection); err != nil {
		return nil, err
	}

	if uc.conversationUC != nil {
		conversationID := entity.ConversationID(connection.RequesterID, connection.ReceiverID, entity.ConnectionContext(connection.ID))
		if _, err := uc.conversationUC.PostSystemMessage(ctx, conversationID, connection.RequesterID, "Connection accepted, you can now chat"); err != nil {
			logger.Warn("Failed to post connection notice for %s: %v", connection.ID, err)
		}
	}

	return connection, nil
}

func (uc *ConnectionUseCase) RejectConnection(ctx context.Context, userID, connectionID string) (*entity.Connection, error) {
	connection, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if connection.ReceiverID != userID {
		return nil, errors.Forbidden("Only the receiving vendor can reject", nil)
	}
	if connection.Status != entity.ConnectionPending {
		return nil, errors.Conflict("Connection is not pending")
	}

	connection.Status = entity.ConnectionRejected
	if err := uc.connectionRepo.Update(ctx, connection); err != nil {
		return nil, err
	}

	return connection, nil
}

// RemoveConnection ends a connected link from either side. History in
// the conversation stays readable; sending stops.
func (uc *ConnectionUseCase) RemoveConnection(ctx context.Context, userID, connectionID string) (*entity.Connection, error) {
	connection, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !connection.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this connection", nil)
	}
	if connection.Status != entity.ConnectionConnected {
		return nil, errors.Conflict("Connection is not active")
	}

	connection.Status = entity.ConnectionRemoved
	if err := uc.connectionRepo.Update(ctx, connection); err != nil {
		return nil, err
	}

	return connection, nil
}

func (uc *ConnectionUseCase) GetConnection(ctx context.Context, userID, connectionID string) (*entity.Connection, error) {
	connection, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !connection.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this connection", nil)
	}
	return connection, nil
}

func (uc *ConnectionUseCase) ListConnections(ctx context.Context, userID, status string) ([]*entity.Connection, error) {
	return uc.connectionRepo.ListByParticipant(ctx, userID, status)
}
