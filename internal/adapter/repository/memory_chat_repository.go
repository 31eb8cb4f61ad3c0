package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/pkg/errors"
	"gamebazaar/pkg/utils"
)

type chatRecord struct {
	mu      sync.Mutex
	chat    *entity.Chat
	lastTs  time.Time
	deleted bool
}

// memoryChatRepository keeps conversations in process memory. Each
// conversation has its own exclusive lock; the indexes have a separate
// RW lock that is only ever taken after (never before) a conversation lock.
type memoryChatRepository struct {
	mu     sync.RWMutex
	chats  map[string]*chatRecord
	pairs  map[string]string
	orders map[string]string
	now    func() time.Time
}

func NewMemoryChatRepository() repository.ChatRepository {
	return newMemoryChatRepository(time.Now)
}

func newMemoryChatRepository(now func() time.Time) *memoryChatRepository {
	return &memoryChatRepository{
		chats:  make(map[string]*chatRecord),
		pairs:  make(map[string]string),
		orders: make(map[string]string),
		now:    now,
	}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func (r *memoryChatRepository) FindOrCreate(ctx context.Context, owner, partner entity.UserSummary) (*entity.Chat, bool, error) {
	if owner.ID == "" || partner.ID == "" {
		return nil, false, errors.BadRequest("Both participants are required", nil)
	}
	if owner.ID == partner.ID {
		return nil, false, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	key := pairKey(owner.ID, partner.ID)

	r.mu.Lock()
	rec, found := r.record(key)
	if !found {
		now := r.now()
		rec = &chatRecord{
			chat: &entity.Chat{
				ID:            uuid.New().String(),
				Participants:  []entity.UserSummary{owner, partner},
				UnreadCount:   map[string]int{owner.ID: 0, partner.ID: 0},
				LastMessageAt: now,
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		}
		r.chats[rec.chat.ID] = rec
		r.pairs[key] = rec.chat.ID
	}
	r.mu.Unlock()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.chat.Snapshot(), !found, nil
}

// record must be called with r.mu held.
func (r *memoryChatRepository) record(key string) (*chatRecord, bool) {
	id, ok := r.pairs[key]
	if !ok {
		return nil, false
	}
	return r.chats[id], true
}

func (r *memoryChatRepository) get(id string) (*chatRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return rec, nil
}

func (r *memoryChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	rec, err := r.get(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.chat.Snapshot(), nil
}

func (r *memoryChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.RLock()
	records := make([]*chatRecord, 0, len(r.chats))
	for _, rec := range r.chats {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	chats := []*entity.Chat{}
	for _, rec := range records {
		rec.mu.Lock()
		if rec.chat.HasParticipant(userID) {
			chats = append(chats, rec.chat.Snapshot())
		}
		rec.mu.Unlock()
	}

	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})

	return chats, nil
}

func (r *memoryChatRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Chat, error) {
	r.mu.RLock()
	chatID, ok := r.orders[orderID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return r.GetByID(ctx, chatID)
}

func (r *memoryChatRepository) DeleteIfEmpty(ctx context.Context, id string) (bool, error) {
	rec, err := r.get(id)
	if err != nil {
		return false, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if len(rec.chat.Messages) > 0 {
		return false, nil
	}

	p := rec.chat.Participants
	r.mu.Lock()
	delete(r.chats, id)
	if len(p) == 2 && r.pairs[pairKey(p[0].ID, p[1].ID)] == id {
		delete(r.pairs, pairKey(p[0].ID, p[1].ID))
	}
	r.mu.Unlock()
	rec.deleted = true

	return true, nil
}

func (r *memoryChatRepository) GetMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	rec, err := r.get(chatID)
	if err != nil {
		return nil, 0, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	all := rec.chat.Messages
	start, end := utils.Window(len(all), limit, offset)

	messages := make([]*entity.Message, 0, end-start)
	for _, m := range all[start:end] {
		messages = append(messages, m.Clone())
	}

	return messages, int64(len(all)), nil
}

func (r *memoryChatRepository) AppendMessages(ctx context.Context, chatID string, messages ...*entity.Message) ([]*entity.Message, error) {
	rec, err := r.get(chatID)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rec.deleted {
		return nil, errors.NotFound("Chat", nil)
	}

	return r.appendLocked(rec, messages)
}

// appendLocked validates the whole batch before touching state so the
// append is all-or-nothing. rec.mu must be held.
func (r *memoryChatRepository) appendLocked(rec *chatRecord, messages []*entity.Message) ([]*entity.Message, error) {
	if len(messages) == 0 {
		return []*entity.Message{}, nil
	}

	chat := rec.chat
	newOrders := make([]string, 0)
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, errors.BadRequest(err.Error(), err)
		}
		if !entity.IsSentinelSender(m.SenderID) && !chat.HasParticipant(m.SenderID) {
			return nil, errors.Forbidden("Sender is not a participant of this chat", nil)
		}
		if m.Type == entity.MessageTypeOrder {
			if m.Order.OrderID == "" {
				return nil, errors.BadRequest("Order ticket without order id", nil)
			}
			newOrders = append(newOrders, m.Order.OrderID)
		}
	}

	if len(newOrders) > 0 {
		r.mu.Lock()
		for _, id := range newOrders {
			if _, exists := r.orders[id]; exists {
				r.mu.Unlock()
				return nil, errors.Conflict("Order " + id + " already has a ticket")
			}
		}
		for _, id := range newOrders {
			r.orders[id] = chat.ID
		}
		r.mu.Unlock()
	}

	stored := make([]*entity.Message, 0, len(messages))
	for _, m := range messages {
		msg := m.Clone()
		msg.ID = uuid.New().String()
		msg.ChatID = chat.ID
		msg.IsRead = false
		msg.CreatedAt = r.nextTimestamp(rec)
		if msg.Order != nil {
			msg.Order.UpdatedAt = msg.CreatedAt
		}

		chat.Messages = append(chat.Messages, msg)
		for _, p := range chat.Participants {
			if p.ID != msg.SenderID {
				chat.UnreadCount[p.ID]++
			}
		}
		stored = append(stored, msg.Clone())
	}

	last := chat.Messages[len(chat.Messages)-1]
	chat.LastMessage = last.Preview()
	chat.LastMessageAt = last.CreatedAt
	chat.UpdatedAt = last.CreatedAt

	return stored, nil
}

// nextTimestamp returns a time strictly after every earlier event in the chat.
func (r *memoryChatRepository) nextTimestamp(rec *chatRecord) time.Time {
	ts := r.now()
	if !ts.After(rec.lastTs) {
		ts = rec.lastTs.Add(time.Nanosecond)
	}
	rec.lastTs = ts
	return ts
}

func (r *memoryChatRepository) MarkRead(ctx context.Context, chatID, readerID string) error {
	rec, err := r.get(chatID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if !rec.chat.HasParticipant(readerID) {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}

	rec.chat.UnreadCount[readerID] = 0
	for _, m := range rec.chat.Messages {
		if m.SenderID != readerID {
			m.IsRead = true
		}
	}

	return nil
}

func (r *memoryChatRepository) MutateLatestOrder(ctx context.Context, chatID string, patch entity.OrderPatch) (*entity.OrderDetails, error) {
	details, _, err := r.UpdateOrder(ctx, chatID, "", func(d *entity.OrderDetails) ([]*entity.Message, error) {
		d.Apply(patch)
		return nil, nil
	})
	return details, err
}

func (r *memoryChatRepository) UpdateOrder(ctx context.Context, chatID, orderID string, fn repository.OrderMutation) (*entity.OrderDetails, []*entity.Message, error) {
	rec, err := r.get(chatID)
	if err != nil {
		return nil, nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if rec.deleted {
		return nil, nil, errors.NotFound("Chat", nil)
	}

	var ticket *entity.Message
	if orderID == "" {
		ticket = rec.chat.LatestOrderMessage()
	} else {
		ticket = rec.chat.OrderMessage(orderID)
	}
	if ticket == nil {
		return nil, nil, errors.NotFound("Order", nil)
	}

	working := ticket.Order.Clone()
	announcements, err := fn(working)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range announcements {
		if err := m.Validate(); err != nil {
			return nil, nil, errors.Internal("Invalid order announcement", err)
		}
	}

	working.UpdatedAt = r.nextTimestamp(rec)

	stored, err := r.appendLocked(rec, announcements)
	if err != nil {
		return nil, nil, err
	}
	ticket.Order = working

	return working.Clone(), stored, nil
}
