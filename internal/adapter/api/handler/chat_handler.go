package handler

import (
	"github.com/labstack/echo/v4"

	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/response"
	"gamebazaar/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createChatRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
}

type sendTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type sendImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// CreateChat finds or creates the conversation with another user.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	var req createChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	view, created, err := h.chatUseCase.StartChat(c.Request().Context(), actor, req.PartnerID)
	if err != nil {
		return response.Error(c, err)
	}

	if created {
		return response.Created(c, view)
	}
	return response.Success(c, view)
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(string)

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	p := utils.GetPaginationParams(c)
	start, end := utils.Window(len(chats), p.Limit, p.Offset)
	return response.Paginated(c, chats[start:end], int64(len(chats)), p.Limit, p.Offset)
}

func (h *ChatHandler) GetChatByID(c echo.Context) error {
	userID := c.Get("uid").(string)

	view, err := h.chatUseCase.GetChat(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), c.Param("id"), userID, p.Limit, p.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, messages, total, p.Limit, p.Offset)
}

func (h *ChatHandler) MarkChatAsRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), c.Param("id"), userID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "read"})
}

func (h *ChatHandler) SendText(c echo.Context) error {
	var req sendTextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(string)

	result, err := h.chatUseCase.SubmitText(c.Request().Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *ChatHandler) SendImage(c echo.Context) error {
	var req sendImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(string)

	result, err := h.chatUseCase.SubmitImage(c.Request().Context(), c.Param("id"), userID, req.ImageURL)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}
