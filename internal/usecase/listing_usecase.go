package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	"gamebazaar/pkg/logger"
)

const FallbackDescription = "Quality offer from a verified seller. Fast and safe delivery through the platform; " +
	"all the details will be confirmed in the chat right after purchase."

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	generator   service.TextGenerator
	timeout     time.Duration
}

func NewListingUseCase(listingRepo repository.ListingRepository, generator service.TextGenerator, timeout time.Duration) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		generator:   generator,
		timeout:     timeout,
	}
}

func (uc *ListingUseCase) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.List(ctx, filter, limit, offset)
}

func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func descriptionPrompt(req service.DescriptionRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a short, friendly marketplace description (3-4 sentences) for a %s offer in the game %s: %s.",
		req.Category, req.Game, req.Item)
	if len(req.Features) > 0 {
		fmt.Fprintf(&sb, " Mention these features: %s.", strings.Join(req.Features, ", "))
	}
	sb.WriteString(" Do not include links or contact details.")
	return sb.String()
}

// GenerateDescription never fails: any problem with the text service yields
// FallbackDescription.
func (uc *ListingUseCase) GenerateDescription(ctx context.Context, req service.DescriptionRequest) string {
	if uc.generator == nil {
		return FallbackDescription
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	text, err := uc.generator.Generate(ctx, descriptionPrompt(req))
	if err != nil {
		logger.Warn("Description generation failed, using fallback: %v", err)
		return FallbackDescription
	}
	if text = strings.TrimSpace(text); text == "" {
		return FallbackDescription
	}
	return text
}
