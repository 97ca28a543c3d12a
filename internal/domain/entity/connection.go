package entity

import "time"

const (
	ConnectionPending   = "pending"
	ConnectionConnected = "connected"
	ConnectionRejected  = "rejected"
	ConnectionRemoved   = "removed"
)

// Connection is a vendor-to-vendor link. Chat over a connection is only
// allowed while Status is "connected".
type Connection struct {
	ID          string    `json:"id" firestore:"id"`
	RequesterID string    `json:"requester_id" firestore:"requesterId"`
	ReceiverID  string    `json:"receiver_id" firestore:"receiverId"`
	Status      string    `json:"status" firestore:"status"` // "pending", "connected", "rejected", "removed"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Connection) HasParticipant(uid string) bool {
	return uid == c.RequesterID || uid == c.ReceiverID
}

func (c *Connection) ChatEnabled() bool {
	return c.Status == ConnectionConnected
}
