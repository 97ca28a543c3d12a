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
)

type firestoreWalletRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletRepository(client *firestore.Client) repository.WalletRepository {
	return &firestoreWalletRepository{client: client}
}

func (r *firestoreWalletRepository) CreateWallet(ctx context.Context, wallet *entity.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	now := time.Now()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	_, err := r.client.Collection("wallets").Doc(wallet.ID).Set(ctx, wallet)
	if err != nil {
		return errors.Internal("Failed to create wallet", err)
	}

	return nil
}

func (r *firestoreWalletRepository) GetWalletByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	iter := r.client.Collection("wallets").
		Where("userId", "==", userID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Wallet", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query wallet", err)
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return nil, errors.Internal("Failed to parse wallet data", err)
	}

	return &wallet, nil
}

func (r *firestoreWalletRepository) UpdateWallet(ctx context.Context, wallet *entity.Wallet) error {
	wallet.UpdatedAt = time.Now()

	_, err := r.client.Collection("wallets").Doc(wallet.ID).Set(ctx, wallet)
	if err != nil {
		return errors.Internal("Failed to update wallet", err)
	}

	return nil
}

func (r *firestoreWalletRepository) CreateTransaction(ctx context.Context, transaction *entity.WalletTransaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	transaction.CreatedAt = time.Now()

	_, err := r.client.Collection("walletTransactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to create wallet transaction", err)
	}

	return nil
}

func (r *firestoreWalletRepository) ListTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.WalletTransaction, error) {
	query := r.client.Collection("walletTransactions").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	iter := paginate(query, limit, offset).Documents(ctx)
	var transactions []*entity.WalletTransaction

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate wallet transactions", err)
		}

		var transaction entity.WalletTransaction
		if err := doc.DataTo(&transaction); err != nil {
			continue
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, nil
}
