package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

// Messages live in one flat collection keyed by conversationId, with a
// composite index on (conversationId, createdAt) for the paged reads.
type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{client: client}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		OrderBy("createdAt", firestore.Desc)

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for conversation %s: %v", conversationID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) MarkAllRead(ctx context.Context, conversationID, receiverID string) (int, error) {
	iter := r.unreadQuery(conversationID, receiverID).Documents(ctx)
	now := time.Now()
	updated := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return updated, errors.Internal("Failed to iterate unread messages", err)
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "readAt", Value: now},
		}); err != nil {
			return updated, errors.Internal("Failed to mark message as read", err)
		}
		updated++
	}

	return updated, nil
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, conversationID, receiverID string) (int, error) {
	docs, err := r.unreadQuery(conversationID, receiverID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}
	return len(docs), nil
}

func (r *firestoreMessageRepository) unreadQuery(conversationID, receiverID string) firestore.Query {
	return r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		Where("receiverId", "==", receiverID).
		Where("readAt", "==", nil)
}

func (r *firestoreMessageRepository) Latest(ctx context.Context, conversationID string) (*entity.Message, error) {
	iter := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to get latest message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}

	return &message, nil
}

func (r *firestoreMessageRepository) DistinctConversationIDs(ctx context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, field := range []string{"senderId", "receiverId"} {
		iter := r.client.Collection("messages").
			Where(field, "==", userID).
			Select("conversationId").
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, errors.Internal("Failed to list conversation ids", err)
			}

			value, err := doc.DataAt("conversationId")
			if err != nil {
				continue
			}
			id, ok := value.(string)
			if !ok || id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}
