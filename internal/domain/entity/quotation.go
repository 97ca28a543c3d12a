package entity

import "time"

const (
	QuotationSent     = "sent"
	QuotationAccepted = "accepted"
	QuotationRejected = "rejected"
	QuotationExpired  = "expired"
)

// Quotation is a vendor's priced response to a service request. It is
// also the relationship record backing a quotation conversation.
type Quotation struct {
	ID               string    `json:"id" firestore:"id"`
	ServiceRequestID string    `json:"service_request_id" firestore:"serviceRequestId"`
	VendorID         string    `json:"vendor_id" firestore:"vendorId"`
	CustomerID       string    `json:"customer_id" firestore:"customerId"`
	Price            float64   `json:"price" firestore:"price"`
	Note             string    `json:"note,omitempty" firestore:"note,omitempty"`
	Status           string    `json:"status" firestore:"status"` // "sent", "accepted", "rejected", "expired"
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ChatEnabled reports whether new messages may be sent on the quotation
// conversation. Rejected and expired quotations keep their history
// readable but no longer accept messages.
func (q *Quotation) ChatEnabled() bool {
	return q.Status == QuotationSent || q.Status == QuotationAccepted
}

func (q *Quotation) HasParticipant(uid string) bool {
	return uid == q.VendorID || uid == q.CustomerID
}
