package entity

import "time"

type Wallet struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Balance   float64   `json:"balance" firestore:"balance"`
	Currency  string    `json:"currency" firestore:"currency"`
	Status    string    `json:"status" firestore:"status"` // "active", "frozen"
	LastTxnAt time.Time `json:"last_txn_at" firestore:"lastTxnAt"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

const (
	WalletTxnTopup    = "topup"
	WalletTxnFee      = "fee"
	WalletTxnAdBudget = "ad_budget"
	WalletTxnRefund   = "refund"
)

type WalletTransaction struct {
	ID              string    `json:"id" firestore:"id"`
	WalletID        string    `json:"wallet_id" firestore:"walletId"`
	UserID          string    `json:"user_id" firestore:"userId"`
	Type            string    `json:"type" firestore:"type"` // "topup", "fee", "ad_budget", "refund"
	Amount          float64   `json:"amount" firestore:"amount"`
	PreviousBalance float64   `json:"previous_balance" firestore:"previousBalance"`
	NewBalance      float64   `json:"new_balance" firestore:"newBalance"`
	Reference       string    `json:"reference,omitempty" firestore:"reference,omitempty"`
	Description     string    `json:"description" firestore:"description"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
