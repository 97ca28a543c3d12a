package usecase

import (
	"context"
	"fmt"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

type QuotationUseCase struct {
	quotationRepo  repository.QuotationRepository
	requestRepo    repository.ServiceRequestRepository
	userRepo       repository.UserRepository
	walletUseCase  *WalletUseCase
	conversationUC *ConversationUseCase
	quotationFee   float64
}

func NewQuotationUseCase(
	quotationRepo repository.QuotationRepository,
	requestRepo repository.ServiceRequestRepository,
	userRepo repository.UserRepository,
	walletUseCase *WalletUseCase,
	conversationUC *ConversationUseCase,
	quotationFee float64,
) *QuotationUseCase {
	return &QuotationUseCase{
		quotationRepo:  quotationRepo,
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		walletUseCase:  walletUseCase,
		conversationUC: conversationUC,
		quotationFee:   quotationFee,
	}
}

type CreateQuotationInput struct {
	ServiceRequestID string
	Price            float64
	Note             string
}

// CreateQuotation sends a vendor's priced offer on an open service
// request. The platform fee is deducted from the vendor wallet before
// the quotation is stored; an insufficient balance blocks the send.
func (uc *QuotationUseCase) CreateQuotation(ctx context.Context, vendorID string, input CreateQuotationInput) (*entity.Quotation, error) {
	vendor, err := uc.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != entity.RoleVendor {
		return nil, errors.Forbidden("Only vendors can send quotations", nil)
	}
	if input.Price <= 0 {
		return nil, errors.BadRequest("Quotation price must be positive", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, input.ServiceRequestID)
	if err != nil {
		return nil, err
	}
	if request.Status != entity.ServiceRequestOpen {
		return nil, errors.Conflict("Service request is no longer open")
	}
	if request.CustomerID == vendorID {
		return nil, errors.BadRequest("Cannot quote on your own request", nil)
	}

	existing, err := uc.quotationRepo.ListByServiceRequest(ctx, input.ServiceRequestID)
	if err != nil {
		return nil, err
	}
	for _, quotation := range existing {
		if quotation.VendorID == vendorID && quotation.ChatEnabled() {
			return nil, errors.Conflict("You already have an active quotation on this request")
		}
	}

	quotation := &entity.Quotation{
		ServiceRequestID: request.ID,
		VendorID:         vendorID,
		CustomerID:       request.CustomerID,
		Price:            input.Price,
		Note:             input.Note,
		Status:           entity.QuotationSent,
	}

	if uc.quotationFee > 0 {
		if _, err := uc.walletUseCase.Deduct(ctx, vendorID, uc.quotationFee, entity.WalletTxnFee, request.ID, "Quotation fee"); err != nil {
			return nil, err
		}
	}

	if err := uc.quotationRepo.Create(ctx, quotation); err != nil {
		if uc.quotationFee > 0 {
			if _, refundErr := uc.walletUseCase.Refund(ctx, vendorID, uc.quotationFee, request.ID, "Quotation fee refund"); refundErr != nil {
				logger.Error("Failed to refund quotation fee for %s: %v", vendorID, refundErr)
			}
		}
		return nil, err
	}

	return quotation, nil
}

// AcceptQuotation is the customer choosing a vendor. Every other sent
// quotation on the request is rejected and the request closes. Each
// affected vendor hears about it through a system message in their
// quotation conversation.
func (uc *QuotationUseCase) AcceptQuotation(ctx context.Context, customerID, quotationID string) (*entity.Quotation, error) {
	quotation, err := uc.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.CustomerID != customerID {
		return nil, errors.Forbidden("You do not own this quotation's request", nil)
	}
	if quotation.Status != entity.QuotationSent {
		return nil, errors.Conflict("Quotation is not awaiting a decision")
	}

	quotation.Status = entity.QuotationAccepted
	if err := uc.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}

	siblings, err := uc.quotationRepo.ListByServiceRequest(ctx, quotation.ServiceRequestID)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.ID == quotation.ID || sibling.Status != entity.QuotationSent {
			continue
		}
		sibling.Status = entity.QuotationRejected
		if err := uc.quotationRepo.Update(ctx, sibling); err != nil {
			logger.Error("Failed to reject sibling quotation %s: %v", sibling.ID, err)
			continue
		}
		uc.postStatusMessage(ctx, sibling, "Your quotation was not selected")
	}

	request, err := uc.requestRepo.GetByID(ctx, quotation.ServiceRequestID)
	if err == nil && request.Status == entity.ServiceRequestOpen {
		request.Status = entity.ServiceRequestClosed
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			logger.Error("Failed to close service request %s: %v", request.ID, err)
		}
	}

	uc.postStatusMessage(ctx, quotation, fmt.Sprintf("Quotation accepted at %.0f", quotation.Price))

	return quotation, nil
}

// RejectQuotation declines a single quotation without touching its
// siblings or the request.
func (uc *QuotationUseCase) RejectQuotation(ctx context.Context, customerID, quotationID string) (*entity.Quotation, error) {
	quotation, err := uc.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.CustomerID != customerID {
		return nil, errors.Forbidden("You do not own this quotation's request", nil)
	}
	if quotation.Status != entity.QuotationSent {
		return nil, errors.Conflict("Quotation is not awaiting a decision")
	}

	quotation.Status = entity.QuotationRejected
	if err := uc.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}

	uc.postStatusMessage(ctx, quotation, "Your quotation was declined")

	return quotation, nil
}

func (uc *QuotationUseCase) GetQuotation(ctx context.Context, callerID, id string) (*entity.Quotation, error) {
	quotation, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quotation.HasParticipant(callerID) && !uc.isAdmin(ctx, callerID) {
		return nil, errors.Forbidden("You are not a participant in this quotation", nil)
	}
	return quotation, nil
}

// ListQuotationsForRequest is the customer reviewing offers on their
// request.
func (uc *QuotationUseCase) ListQuotationsForRequest(ctx context.Context, callerID, serviceRequestID string) ([]*entity.Quotation, error) {
	request, err := uc.requestRepo.GetByID(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if request.CustomerID != callerID && !uc.isAdmin(ctx, callerID) {
		return nil, errors.Forbidden("You do not own this service request", nil)
	}

	return uc.quotationRepo.ListByServiceRequest(ctx, serviceRequestID)
}

func (uc *QuotationUseCase) ListMyQuotations(ctx context.Context, vendorID string) ([]*entity.Quotation, error) {
	return uc.quotationRepo.ListByParticipant(ctx, vendorID, nil)
}

// postStatusMessage drops a system notice into the quotation's
// conversation addressed to the vendor. Best effort.
func (uc *QuotationUseCase) postStatusMessage(ctx context.Context, quotation *entity.Quotation, content string) {
	if uc.conversationUC == nil {
		return
	}
	conversationID := entity.ConversationID(quotation.VendorID, quotation.CustomerID, entity.QuotationContext(quotation.ID))
	if _, err := uc.conversationUC.PostSystemMessage(ctx, conversationID, quotation.VendorID, content); err != nil {
		logger.Warn("Failed to post status message for quotation %s: %v", quotation.ID, err)
	}
}

func (uc *QuotationUseCase) isAdmin(ctx context.Context, userID string) bool {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsAdmin()
}
