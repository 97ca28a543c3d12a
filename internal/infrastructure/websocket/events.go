package websocket

import "encoding/json"

// Event is the wire envelope for every WebSocket frame, inbound and
// outbound.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client-to-server event types.
const (
	EventPing              = "ping"
	EventJoinConversation  = "join_conversation"
	EventLeaveConversation = "leave_conversation"
	EventSendMessage       = "send_message"
	EventTyping            = "typing"
)

// Server-to-client event types.
const (
	EventPong         = "pong"
	EventNewMessage   = "new_message"
	EventMessagesRead = "messages_read"
	EventError        = "error"
)

type JoinConversationPayload struct {
	ConversationID string `json:"conversation_id"`
}

type SendMessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
	Type           string `json:"type,omitempty"`
}

type TypingPayload struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id,omitempty"`
	IsTyping       bool   `json:"is_typing"`
}

type MessagesReadPayload struct {
	ConversationID string `json:"conversation_id"`
	ReaderID       string `json:"reader_id"`
	Count          int    `json:"count"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Encode marshals an outbound event. Marshal failures degrade to an
// event with no data rather than dropping the frame.
func Encode(eventType string, data interface{}) []byte {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}

	payload, _ := json.Marshal(Event{Type: eventType, Data: raw})
	return payload
}
