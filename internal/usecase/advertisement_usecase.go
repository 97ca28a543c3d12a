package usecase

import (
	"context"
	"io"
	"time"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/internal/domain/repository"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

type AdvertisementUseCase struct {
	adRepo         repository.AdvertisementRepository
	userRepo       repository.UserRepository
	walletUseCase  *WalletUseCase
	conversationUC *ConversationUseCase
	uploader       FileUploader
	adDailyRate    float64
}

func NewAdvertisementUseCase(
	adRepo repository.AdvertisementRepository,
	userRepo repository.UserRepository,
	walletUseCase *WalletUseCase,
	conversationUC *ConversationUseCase,
	uploader FileUploader,
	adDailyRate float64,
) *AdvertisementUseCase {
	return &AdvertisementUseCase{
		adRepo:         adRepo,
		userRepo:       userRepo,
		walletUseCase:  walletUseCase,
		conversationUC: conversationUC,
		uploader:       uploader,
		adDailyRate:    adDailyRate,
	}
}

type CreateAdvertisementInput struct {
	Title       string
	Description string
	Days        int
}

// CreateAdvertisement books vendor promotion for a number of days. The
// full budget (days times the daily rate) is charged to the vendor
// wallet up front.
func (uc *AdvertisementUseCase) CreateAdvertisement(ctx context.Context, vendorID string, input CreateAdvertisementInput) (*entity.Advertisement, error) {
	vendor, err := uc.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != entity.RoleVendor {
		return nil, errors.Forbidden("Only vendors can advertise", nil)
	}
	if input.Days < 1 {
		return nil, errors.BadRequest("Advertisement must run for at least one day", nil)
	}

	budget := float64(input.Days) * uc.adDailyRate
	now := time.Now()

	ad := &entity.Advertisement{
		VendorID:    vendorID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      budget,
		Status:      entity.AdvertisementActive,
		StartsAt:    now,
		EndsAt:      now.AddDate(0, 0, input.Days),
	}

	if _, err := uc.walletUseCase.Deduct(ctx, vendorID, budget, entity.WalletTxnAdBudget, ad.Title, "Advertisement budget"); err != nil {
		return nil, err
	}

	if err := uc.adRepo.Create(ctx, ad); err != nil {
		if _, refundErr := uc.walletUseCase.Refund(ctx, vendorID, budget, ad.Title, "Advertisement budget refund"); refundErr != nil {
			logger.Error("Failed to refund ad budget for %s: %v", vendorID, refundErr)
		}
		return nil, err
	}

	return ad, nil
}

// UploadBanner stores the banner image and records its public URL on
// the advertisement. A previous banner is deleted best effort.
func (uc *AdvertisementUseCase) UploadBanner(ctx context.Context, vendorID, advertisementID string, file io.Reader, contentType string) (*entity.Advertisement, error) {
	if uc.uploader == nil {
		return nil, errors.Internal("File storage is not configured", nil)
	}

	ad, err := uc.adRepo.GetByID(ctx, advertisementID)
	if err != nil {
		return nil, err
	}
	if ad.VendorID != vendorID {
		return nil, errors.Forbidden("You do not own this advertisement", nil)
	}

	url, err := uc.uploader.UploadFile(ctx, file, contentType, "ad-banners")
	if err != nil {
		return nil, errors.Internal("Failed to upload banner", err)
	}

	if ad.BannerURL != "" {
		if err := uc.uploader.DeleteFile(ctx, ad.BannerURL); err != nil {
			logger.Warn("Failed to delete previous banner for ad %s: %v", ad.ID, err)
		}
	}

	ad.BannerURL = url
	if err := uc.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}

	return ad, nil
}

// ListActiveAdvertisements returns the live ad board. Ads past their
// end date are expired lazily as they are encountered.
func (uc *AdvertisementUseCase) ListActiveAdvertisements(ctx context.Context, limit, offset int) ([]*entity.Advertisement, error) {
	ads, err := uc.adRepo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	live := make([]*entity.Advertisement, 0, len(ads))
	for _, ad := range ads {
		if ad.EndsAt.Before(now) {
			ad.Status = entity.AdvertisementExpired
			if err := uc.adRepo.Update(ctx, ad); err != nil {
				logger.Warn("Failed to expire advertisement %s: %v", ad.ID, err)
			}
			continue
		}
		live = append(live, ad)
	}

	return live, nil
}

func (uc *AdvertisementUseCase) ListMyAdvertisements(ctx context.Context, vendorID string) ([]*entity.Advertisement, error) {
	return uc.adRepo.ListByVendor(ctx, vendorID)
}

func (uc *AdvertisementUseCase) GetAdvertisement(ctx context.Context, id string) (*entity.Advertisement, error) {
	return uc.adRepo.GetByID(ctx, id)
}

type CreateAdRequestInput struct {
	AdvertisementID string
	Note            string
}

// CreateAdRequest records a customer inquiry on an advertisement and
// opens the ad-inquiry conversation by sending the first message. The
// message, not the request record, is what makes the conversation show
// up in both inboxes.
func (uc *AdvertisementUseCase) CreateAdRequest(ctx context.Context, customerID string, input CreateAdRequestInput) (*entity.AdRequest, error) {
	ad, err := uc.adRepo.GetByID(ctx, input.AdvertisementID)
	if err != nil {
		return nil, err
	}
	if ad.Status != entity.AdvertisementActive {
		return nil, errors.Conflict("Advertisement is no longer active")
	}
	if ad.VendorID == customerID {
		return nil, errors.BadRequest("Cannot inquire on your own advertisement", nil)
	}

	request := &entity.AdRequest{
		AdvertisementID: ad.ID,
		CustomerID:      customerID,
		VendorID:        ad.VendorID,
		Note:            input.Note,
	}
	if err := uc.adRepo.CreateAdRequest(ctx, request); err != nil {
		return nil, err
	}

	content := input.Note
	if content == "" {
		content = "Hi, I'm interested in " + ad.Title
	}
	if uc.conversationUC != nil {
		if _, err := uc.conversationUC.SendAdInquiryMessage(ctx, customerID, ad.ID, content); err != nil {
			logger.Warn("Failed to send ad inquiry message for %s: %v", ad.ID, err)
		}
	}

	return request, nil
}

// ListAdRequests lets the vendor review inquiries on their ad.
func (uc *AdvertisementUseCase) ListAdRequests(ctx context.Context, vendorID, advertisementID string) ([]*entity.AdRequest, error) {
	ad, err := uc.adRepo.GetByID(ctx, advertisementID)
	if err != nil {
		return nil, err
	}
	if ad.VendorID != vendorID {
		return nil, errors.Forbidden("You do not own this advertisement", nil)
	}

	return uc.adRepo.ListAdRequestsByAd(ctx, advertisementID)
}
