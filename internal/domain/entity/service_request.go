package entity

import "time"

const (
	ServiceRequestOpen   = "open"
	ServiceRequestClosed = "closed"
)

// ServiceRequest is a customer's posted job that vendors quote on.
type ServiceRequest struct {
	ID          string    `json:"id" firestore:"id"`
	CustomerID  string    `json:"customer_id" firestore:"customerId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Category    string    `json:"category" firestore:"category"`
	Budget      float64   `json:"budget,omitempty" firestore:"budget,omitempty"`
	Status      string    `json:"status" firestore:"status"` // "open", "closed"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
