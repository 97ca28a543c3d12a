package usecase

import (
	"context"
	"time"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

const walletCurrency = "IDR"

type WalletUseCase struct {
	walletRepo repository.WalletRepository
}

func NewWalletUseCase(walletRepo repository.WalletRepository) *WalletUseCase {
	return &WalletUseCase{walletRepo: walletRepo}
}

// CreateWalletForUser provisions the user's wallet at registration.
func (uc *WalletUseCase) CreateWalletForUser(ctx context.Context, userID string) (*entity.Wallet, error) {
	wallet := &entity.Wallet{
		UserID:   userID,
		Balance:  0,
		Currency: walletCurrency,
		Status:   "active",
	}
	if err := uc.walletRepo.CreateWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	return uc.walletRepo.GetWalletByUserID(ctx, userID)
}

// Topup credits the wallet. Payment gateway integration is out of
// scope; the reference identifies the external payment.
func (uc *WalletUseCase) Topup(ctx context.Context, userID string, amount float64, reference string) (*entity.WalletTransaction, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("Topup amount must be positive", nil)
	}

	wallet, err := uc.walletRepo.GetWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Status != "active" {
		return nil, errors.Forbidden("Wallet is not active", nil)
	}

	previous := wallet.Balance
	wallet.Balance += amount
	wallet.LastTxnAt = time.Now()
	if err := uc.walletRepo.UpdateWallet(ctx, wallet); err != nil {
		return nil, err
	}

	transaction := &entity.WalletTransaction{
		WalletID:        wallet.ID,
		UserID:          userID,
		Type:            entity.WalletTxnTopup,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      wallet.Balance,
		Reference:       reference,
		Description:     "Wallet topup",
	}
	if err := uc.walletRepo.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Deduct debits the wallet for a platform charge. Callers pass the
// transaction type and a reference to the charged resource.
func (uc *WalletUseCase) Deduct(ctx context.Context, userID string, amount float64, txnType, reference, description string) (*entity.WalletTransaction, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("Deduction amount must be positive", nil)
	}

	wallet, err := uc.walletRepo.GetWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Status != "active" {
		return nil, errors.Forbidden("Wallet is not active", nil)
	}
	if wallet.Balance < amount {
		return nil, errors.BadRequest("Insufficient wallet balance", nil)
	}

	previous := wallet.Balance
	wallet.Balance -= amount
	wallet.LastTxnAt = time.Now()
	if err := uc.walletRepo.UpdateWallet(ctx, wallet); err != nil {
		return nil, err
	}

	transaction := &entity.WalletTransaction{
		WalletID:        wallet.ID,
		UserID:          userID,
		Type:            txnType,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      wallet.Balance,
		Reference:       reference,
		Description:     description,
	}
	if err := uc.walletRepo.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Refund credits the wallet back after a reversed charge.
func (uc *WalletUseCase) Refund(ctx context.Context, userID string, amount float64, reference, description string) (*entity.WalletTransaction, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("Refund amount must be positive", nil)
	}

	wallet, err := uc.walletRepo.GetWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := wallet.Balance
	wallet.Balance += amount
	wallet.LastTxnAt = time.Now()
	if err := uc.walletRepo.UpdateWallet(ctx, wallet); err != nil {
		return nil, err
	}

	transaction := &entity.WalletTransaction{
		WalletID:        wallet.ID,
		UserID:          userID,
		Type:            entity.WalletTxnRefund,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      wallet.Balance,
		Reference:       reference,
		Description:     description,
	}
	if err := uc.walletRepo.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (uc *WalletUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.WalletTransaction, error) {
	return uc.walletRepo.ListTransactionsByUserID(ctx, userID, limit, offset)
}
