package repository

import (
	"context"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
)

type WalletRepository interface {
	CreateWallet(ctx context.Context, wallet *entity.Wallet) error
	GetWalletByUserID(ctx context.Context, userID string) (*entity.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *entity.Wallet) error

	CreateTransaction(ctx context.Context, transaction *entity.WalletTransaction) error
	ListTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.WalletTransaction, error)
}
