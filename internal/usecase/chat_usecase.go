package usecase

import (
	"context"
	"strings"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	"gamebazaar/internal/infrastructure/ratelimit"
	ws "gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/logger"
)

const BlockedLinkWarning = "Your message was not delivered: links to external websites are not allowed. " +
	"For your safety keep all communication and payments on the platform."

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	linkPolicy  *service.LinkPolicy
	notifier    Notifier
	rateLimiter RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	linkPolicy *service.LinkPolicy,
	notifier Notifier,
	rateLimiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		linkPolicy:  linkPolicy,
		notifier:    notifier,
		rateLimiter: rateLimiter,
	}
}

type SendResult struct {
	Message *entity.Message `json:"message"`
	Blocked bool            `json:"blocked"`
}

// StartChat finds or creates the conversation between the actor and partnerID.
func (uc *ChatUseCase) StartChat(ctx context.Context, actor entity.Actor, partnerID string) (*entity.ChatView, bool, error) {
	partner, err := uc.userRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, false, err
	}

	chat, created, err := uc.chatRepo.FindOrCreate(ctx, actor.Summary(), partner.Summary())
	if err != nil {
		return nil, false, err
	}
	if created {
		logger.Info("Chat created: chatID=%s, participants=%s,%s", chat.ID, actor.ID, partner.ID)
	}

	view := chat.ViewFor(actor.ID)
	return &view, created, nil
}

func (uc *ChatUseCase) participantChat(ctx context.Context, chatID, userID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) checkRate(userID string) error {
	if uc.rateLimiter == nil {
		return nil
	}
	if ok, wait := uc.rateLimiter.Allow(userID, ratelimit.ActionSendMessage); !ok {
		return errors.TooManyRequests("You are sending messages too fast", wait)
	}
	return nil
}

// SubmitText moderates and sends a text message. Text linking outside the
// platform is replaced by a single system warning; that is not an error.
func (uc *ChatUseCase) SubmitText(ctx context.Context, chatID, senderID, rawText string) (*SendResult, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	chat, err := uc.participantChat(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRate(senderID); err != nil {
		return nil, err
	}

	msg := entity.NewTextMessage(senderID, text)
	blocked := !uc.linkPolicy.Allowed(text)
	if blocked {
		logger.Info("Blocked external link: chatID=%s, senderID=%s", chatID, senderID)
		msg = entity.NewWarningMessage(BlockedLinkWarning)
	}

	stored, err := uc.chatRepo.AppendMessages(ctx, chatID, msg)
	if err != nil {
		return nil, err
	}
	uc.publish(chat, stored)

	return &SendResult{Message: stored[0], Blocked: blocked}, nil
}

// SubmitImage sends an image message. Images are not moderated.
func (uc *ChatUseCase) SubmitImage(ctx context.Context, chatID, senderID, imageURL string) (*SendResult, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, errors.BadRequest("Image URL is required", nil)
	}

	chat, err := uc.participantChat(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRate(senderID); err != nil {
		return nil, err
	}

	stored, err := uc.chatRepo.AppendMessages(ctx, chatID, entity.NewImageMessage(senderID, imageURL))
	if err != nil {
		return nil, err
	}
	uc.publish(chat, stored)

	return &SendResult{Message: stored[0]}, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]entity.ChatView, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]entity.ChatView, 0, len(chats))
	for _, c := range chats {
		views = append(views, c.ViewFor(userID))
	}
	return views, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, chatID, userID string) (*entity.ChatView, error) {
	chat, err := uc.participantChat(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	view := chat.ViewFor(userID)
	return &view, nil
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, chatID, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.participantChat(ctx, chatID, userID); err != nil {
		return nil, 0, err
	}
	return uc.chatRepo.GetMessages(ctx, chatID, limit, offset)
}

func (uc *ChatUseCase) MarkRead(ctx context.Context, chatID, userID string) error {
	return uc.chatRepo.MarkRead(ctx, chatID, userID)
}

// RelayTyping forwards a client typing indicator to the other participant.
func (uc *ChatUseCase) RelayTyping(ctx context.Context, userID, chatID string, typing bool) error {
	chat, err := uc.participantChat(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if uc.rateLimiter != nil {
		if ok, _ := uc.rateLimiter.Allow(userID, ratelimit.ActionTyping); !ok {
			return nil
		}
	}
	if uc.notifier != nil {
		partner := chat.Partner(userID)
		uc.notifier.Notify(partner.ID, ws.EventTyping, TypingEvent{ChatID: chatID, UserID: userID, Typing: typing})
	}
	return nil
}

func (uc *ChatUseCase) publish(chat *entity.Chat, messages []*entity.Message) {
	publishMessages(uc.notifier, chat, messages)
}

func publishMessages(n Notifier, chat *entity.Chat, messages []*entity.Message) {
	if n == nil {
		return
	}
	for _, m := range messages {
		for _, p := range chat.Participants {
			n.Notify(p.ID, ws.EventNewMessage, NewMessageEvent{ChatID: chat.ID, Message: m})
		}
	}
}
