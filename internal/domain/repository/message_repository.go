package repository

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
)

// MessageRepository is the durable, append-only message log. Messages
// are partitioned by conversation ID; ordering within a conversation is
// by creation time.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// ListByConversation returns up to limit messages ordered by
	// creation time descending (newest page first).
	ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, error)

	// MarkAllRead stamps ReadAt on every unread message addressed to
	// receiverID in the conversation and returns how many it updated.
	MarkAllRead(ctx context.Context, conversationID, receiverID string) (int, error)

	CountUnread(ctx context.Context, conversationID, receiverID string) (int, error)

	// Latest returns the most recent message, or nil when the
	// conversation has no messages yet.
	Latest(ctx context.Context, conversationID string) (*entity.Message, error)

	// DistinctConversationIDs lists every conversation ID the user
	// appears in as sender or receiver.
	DistinctConversationIDs(ctx context.Context, userID string) ([]string, error)
}
