package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

type quotationFixture struct {
	uc       *QuotationUseCase
	convUC   *ConversationUseCase
	messages *fakeMessageRepo
	users    *fakeUserRepo
	quotes   *fakeQuotationRepo
	requests *fakeServiceRequestRepo
	wallets  *fakeWalletRepo
}

func newQuotationFixture(t *testing.T, fee float64) *quotationFixture {
	t.Helper()

	f := &quotationFixture{
		messages: &fakeMessageRepo{},
		users: newFakeUserRepo(
			&entity.User{ID: "cust1", FullName: "Customer One", Role: entity.RoleCustomer},
			&entity.User{ID: "vend1", BusinessName: "Vendor One", Role: entity.RoleVendor},
			&entity.User{ID: "vend2", BusinessName: "Vendor Two", Role: entity.RoleVendor},
		),
		quotes: newFakeQuotationRepo(),
		requests: newFakeServiceRequestRepo(&entity.ServiceRequest{
			ID: "sr1", CustomerID: "cust1", Title: "Fix my sink",
			Status: entity.ServiceRequestOpen,
		}),
		wallets: newFakeWalletRepo(
			&entity.Wallet{ID: "w1", UserID: "vend1", Balance: 10000, Currency: "IDR", Status: "active"},
			&entity.Wallet{ID: "w2", UserID: "vend2", Balance: 1000, Currency: "IDR", Status: "active"},
		),
	}

	walletUC := NewWalletUseCase(f.wallets)
	f.convUC = NewConversationUseCase(f.messages, f.users, f.quotes, newFakeConnectionRepo(), newFakeAdvertisementRepo(), nil)
	f.uc = NewQuotationUseCase(f.quotes, f.requests, f.users, walletUC, f.convUC, fee)
	return f
}

func TestCreateQuotationDeductsFee(t *testing.T) {
	f := newQuotationFixture(t, 5000)
	ctx := context.Background()

	quotation, err := f.uc.CreateQuotation(ctx, "vend1", CreateQuotationInput{
		ServiceRequestID: "sr1",
		Price:            150000,
		Note:             "can start tomorrow",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationSent, quotation.Status)
	assert.Equal(t, "cust1", quotation.CustomerID)

	wallet, err := f.wallets.GetWalletByUserID(ctx, "vend1")
	require.NoError(t, err)
	assert.Equal(t, float64(5000), wallet.Balance)

	require.Len(t, f.wallets.transactions, 1)
	assert.Equal(t, entity.WalletTxnFee, f.wallets.transactions[0].Type)
	assert.Equal(t, float64(10000), f.wallets.transactions[0].PreviousBalance)
}

func TestCreateQuotationInsufficientBalance(t *testing.T) {
	f := newQuotationFixture(t, 5000)

	_, err := f.uc.CreateQuotation(context.Background(), "vend2", CreateQuotationInput{
		ServiceRequestID: "sr1",
		Price:            150000,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Empty(t, f.quotes.quotations)
}

func TestCreateQuotationRejectsDuplicatesAndClosedRequests(t *testing.T) {
	f := newQuotationFixture(t, 0)
	ctx := context.Background()

	_, err := f.uc.CreateQuotation(ctx, "vend1", CreateQuotationInput{ServiceRequestID: "sr1", Price: 100})
	require.NoError(t, err)

	_, err = f.uc.CreateQuotation(ctx, "vend1", CreateQuotationInput{ServiceRequestID: "sr1", Price: 90})
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = f.uc.CreateQuotation(ctx, "cust1", CreateQuotationInput{ServiceRequestID: "sr1", Price: 100})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	f.requests.requests["sr1"].Status = entity.ServiceRequestClosed
	_, err = f.uc.CreateQuotation(ctx, "vend2", CreateQuotationInput{ServiceRequestID: "sr1", Price: 80})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAcceptQuotationRejectsSiblingsAndClosesRequest(t *testing.T) {
	f := newQuotationFixture(t, 0)
	ctx := context.Background()

	first, err := f.uc.CreateQuotation(ctx, "vend1", CreateQuotationInput{ServiceRequestID: "sr1", Price: 100})
	require.NoError(t, err)
	second, err := f.uc.CreateQuotation(ctx, "vend2", CreateQuotationInput{ServiceRequestID: "sr1", Price: 90})
	require.NoError(t, err)

	// Only the request owner may accept.
	_, err = f.uc.AcceptQuotation(ctx, "vend2", first.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	accepted, err := f.uc.AcceptQuotation(ctx, "cust1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationAccepted, accepted.Status)

	assert.Equal(t, entity.QuotationRejected, f.quotes.quotations[second.ID].Status)
	assert.Equal(t, entity.ServiceRequestClosed, f.requests.requests["sr1"].Status)

	// Both vendors got a system message in their quotation conversation.
	acceptedConv := entity.ConversationID("vend1", "cust1", entity.QuotationContext(first.ID))
	latest, err := f.messages.Latest(ctx, acceptedConv)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, entity.MessageTypeSystem, latest.Type)
	assert.Equal(t, "vend1", latest.ReceiverID)

	rejectedConv := entity.ConversationID("vend2", "cust1", entity.QuotationContext(second.ID))
	latest, err = f.messages.Latest(ctx, rejectedConv)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, entity.MessageTypeSystem, latest.Type)

	// Accepting twice fails.
	_, err = f.uc.AcceptQuotation(ctx, "cust1", first.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRejectQuotation(t *testing.T) {
	f := newQuotationFixture(t, 0)
	ctx := context.Background()

	quotation, err := f.uc.CreateQuotation(ctx, "vend1", CreateQuotationInput{ServiceRequestID: "sr1", Price: 100})
	require.NoError(t, err)

	rejected, err := f.uc.RejectQuotation(ctx, "cust1", quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationRejected, rejected.Status)

	// The request stays open for other offers.
	assert.Equal(t, entity.ServiceRequestOpen, f.requests.requests["sr1"].Status)
}
