package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
	"gamebazaar/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{listingUseCase: listingUseCase}
}

type generateDescriptionRequest struct {
	Game     string   `json:"game" validate:"required"`
	Item     string   `json:"item" validate:"required"`
	Category string   `json:"category" validate:"omitempty,oneof=currency accounts items boosting"`
	Features []string `json:"features" validate:"max=10"`
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	p := utils.GetPaginationParams(c)
	filter := repository.ListingFilter{
		Game:     c.QueryParam("game"),
		Type:     entity.ListingCategory(c.QueryParam("type")),
		SellerID: c.QueryParam("seller_id"),
	}

	listings, total, err := h.listingUseCase.List(c.Request().Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, p.Limit, p.Offset)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) GenerateDescription(c echo.Context) error {
	var req generateDescriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	description := h.listingUseCase.GenerateDescription(c.Request().Context(), service.DescriptionRequest{
		Game:     req.Game,
		Item:     req.Item,
		Category: req.Category,
		Features: req.Features,
	})

	return response.Success(c, map[string]string{"description": description})
}
