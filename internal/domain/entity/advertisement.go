package entity

import "time"

const (
	AdvertisementActive  = "active"
	AdvertisementExpired = "expired"
)

// Advertisement is a vendor promotion funded from the vendor wallet.
type Advertisement struct {
	ID          string    `json:"id" firestore:"id"`
	VendorID    string    `json:"vendor_id" firestore:"vendorId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty" firestore:"bannerUrl,omitempty"`
	Budget      float64   `json:"budget" firestore:"budget"`
	Status      string    `json:"status" firestore:"status"` // "active", "expired"
	StartsAt    time.Time `json:"starts_at" firestore:"startsAt"`
	EndsAt      time.Time `json:"ends_at" firestore:"endsAt"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// AdRequest records a customer inquiry on an advertisement. There is no
// richer relationship record behind an ad-inquiry conversation; the
// inquiry message itself makes the conversation discoverable.
type AdRequest struct {
	ID              string    `json:"id" firestore:"id"`
	AdvertisementID string    `json:"advertisement_id" firestore:"advertisementId"`
	CustomerID      string    `json:"customer_id" firestore:"customerId"`
	VendorID        string    `json:"vendor_id" firestore:"vendorId"`
	Note            string    `json:"note,omitempty" firestore:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
