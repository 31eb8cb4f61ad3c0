package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
	"gamebazaar/pkg/utils"
)

type BoostingHandler struct {
	boostingUseCase *usecase.BoostingUseCase
}

func NewBoostingHandler(boostingUseCase *usecase.BoostingUseCase) *BoostingHandler {
	return &BoostingHandler{boostingUseCase: boostingUseCase}
}

type createBoostingRequest struct {
	Game        string  `json:"game" validate:"required"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Budget      float64 `json:"budget" validate:"gte=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
}

type placeBidRequest struct {
	Price        float64 `json:"price" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	TimeEstimate string  `json:"time_estimate" validate:"required"`
	Comment      string  `json:"comment" validate:"max=1000"`
}

func (h *BoostingHandler) CreateRequest(c echo.Context) error {
	var req createBoostingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	created, err := h.boostingUseCase.CreateRequest(c.Request().Context(), actor, usecase.CreateBoostingInput{
		Game:        req.Game,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Currency:    req.Currency,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, created)
}

func (h *BoostingHandler) ListRequests(c echo.Context) error {
	p := utils.GetPaginationParams(c)
	status := entity.BoostingStatus(c.QueryParam("status"))

	requests, total, err := h.boostingUseCase.ListRequests(c.Request().Context(), status, p.Limit, p.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, requests, total, p.Limit, p.Offset)
}

func (h *BoostingHandler) GetRequest(c echo.Context) error {
	req, err := h.boostingUseCase.GetRequest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, req)
}

func (h *BoostingHandler) PlaceBid(c echo.Context) error {
	var req placeBidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	bid, err := h.boostingUseCase.PlaceBid(c.Request().Context(), actor, c.Param("id"), usecase.PlaceBidInput{
		Price:        req.Price,
		Currency:     req.Currency,
		TimeEstimate: req.TimeEstimate,
		Comment:      req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, bid)
}

func (h *BoostingHandler) AcceptBid(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.boostingUseCase.AcceptBid(c.Request().Context(), actor, c.Param("id"), c.Param("bidID"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
