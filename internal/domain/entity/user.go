package entity

import "time"

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string `json:"id" firestore:"id"`
	Email        string `json:"email" firestore:"email"`
	FullName     string `json:"full_name" firestore:"fullName"`
	BusinessName string `json:"business_name,omitempty" firestore:"businessName,omitempty"`
	Phone        string `json:"phone,omitempty" firestore:"phone,omitempty"`
	City         string `json:"city,omitempty" firestore:"city,omitempty"`
	Role         string `json:"role" firestore:"role"`     // "customer", "vendor", "admin"
	Status       string `json:"status" firestore:"status"` // "active", "suspended"

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DisplayName prefers the vendor business name over the personal name.
func (u *User) DisplayName() string {
	if u.BusinessName != "" {
		return u.BusinessName
	}
	return u.FullName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
