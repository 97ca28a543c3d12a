package entity

import "time"

// MaxMessageLength bounds chat message content.
const MaxMessageLength = 2000

const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeSystem = "system"
)

// Message is one entry in a conversation's append-only log. Messages
// are never deleted; the only mutation after creation is setting ReadAt.
type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	QuotationID    string     `json:"quotation_id,omitempty" firestore:"quotationId,omitempty"`
	ConnectionID   string     `json:"connection_id,omitempty" firestore:"connectionId,omitempty"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	ReceiverID     string     `json:"receiver_id" firestore:"receiverId"`
	Content        string     `json:"content" firestore:"content"`
	Type           string     `json:"type" firestore:"type"` // "text", "image", "system"
	ReadAt         *time.Time `json:"read_at,omitempty" firestore:"readAt"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
}
