package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

func TestWalletTopupAndDeduct(t *testing.T) {
	wallets := newFakeWalletRepo(
		&entity.Wallet{ID: "w1", UserID: "vend1", Balance: 0, Currency: "IDR", Status: "active"},
	)
	uc := NewWalletUseCase(wallets)
	ctx := context.Background()

	txn, err := uc.Topup(ctx, "vend1", 20000, "pay-123")
	require.NoError(t, err)
	assert.Equal(t, entity.WalletTxnTopup, txn.Type)
	assert.Equal(t, float64(0), txn.PreviousBalance)
	assert.Equal(t, float64(20000), txn.NewBalance)

	txn, err = uc.Deduct(ctx, "vend1", 5000, entity.WalletTxnFee, "q1", "Quotation fee")
	require.NoError(t, err)
	assert.Equal(t, float64(15000), txn.NewBalance)

	wallet, err := uc.GetWallet(ctx, "vend1")
	require.NoError(t, err)
	assert.Equal(t, float64(15000), wallet.Balance)
}

func TestWalletDeductInsufficientBalance(t *testing.T) {
	wallets := newFakeWalletRepo(
		&entity.Wallet{ID: "w1", UserID: "vend1", Balance: 100, Currency: "IDR", Status: "active"},
	)
	uc := NewWalletUseCase(wallets)

	_, err := uc.Deduct(context.Background(), "vend1", 5000, entity.WalletTxnFee, "q1", "Quotation fee")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	wallet, err := uc.GetWallet(context.Background(), "vend1")
	require.NoError(t, err)
	assert.Equal(t, float64(100), wallet.Balance)
	assert.Empty(t, wallets.transactions)
}

func TestWalletRejectsNonPositiveAmounts(t *testing.T) {
	wallets := newFakeWalletRepo(
		&entity.Wallet{ID: "w1", UserID: "vend1", Balance: 100, Currency: "IDR", Status: "active"},
	)
	uc := NewWalletUseCase(wallets)
	ctx := context.Background()

	_, err := uc.Topup(ctx, "vend1", 0, "ref")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	_, err = uc.Deduct(ctx, "vend1", -5, entity.WalletTxnFee, "ref", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestWalletFrozenBlocksCharges(t *testing.T) {
	wallets := newFakeWalletRepo(
		&entity.Wallet{ID: "w1", UserID: "vend1", Balance: 10000, Currency: "IDR", Status: "frozen"},
	)
	uc := NewWalletUseCase(wallets)
	ctx := context.Background()

	_, err := uc.Topup(ctx, "vend1", 1000, "ref")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = uc.Deduct(ctx, "vend1", 1000, entity.WalletTxnFee, "ref", "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestWalletMissing(t *testing.T) {
	uc := NewWalletUseCase(newFakeWalletRepo())

	_, err := uc.GetWallet(context.Background(), "ghost")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
