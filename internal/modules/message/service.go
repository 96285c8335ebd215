package message

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

// checkLookback is how far back the first poll of a (user, order) pair
// looks. Without it a freshly opened thread would either miss recent
// messages or replay the whole history.
const checkLookback = 5 * time.Second

type watermarkKey struct {
	userID  int64
	orderID int64
}

type Service struct {
	messages MessageRepository
	orders   OrderRepository
	now      func() time.Time

	mu         sync.Mutex
	watermarks map[watermarkKey]time.Time
}

func NewService(messages MessageRepository, orders OrderRepository) *Service {
	return NewServiceWithClock(messages, orders, time.Now)
}

func NewServiceWithClock(messages MessageRepository, orders OrderRepository, now func() time.Time) *Service {
	return &Service{
		messages:   messages,
		orders:     orders,
		now:        now,
		watermarks: make(map[watermarkKey]time.Time),
	}
}

// Send appends a message to an order thread the sender can access. The
// sender's display name is copied onto the message so later renames do
// not rewrite history.
func (s *Service) Send(ctx context.Context, senderID int64, senderName string, role domain.Role, orderID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !o.AccessibleBy(senderID, role) {
		return nil, ErrForbidden
	}

	m := &domain.Message{
		OrderID:    orderID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListByOrder returns the full thread for a caller with access to the
// order.
func (s *Service) ListByOrder(ctx context.Context, userID int64, role domain.Role, orderID int64) ([]domain.Message, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !o.AccessibleBy(userID, role) {
		return nil, ErrForbidden
	}
	return s.messages.ListByOrder(ctx, orderID)
}

// CheckNew answers one poll. Each (user, order) pair carries its own
// in-process watermark, advanced to now on every call, so two open
// threads never steal each other's notifications. The watermark does
// not survive a restart; the first poll after one just re-reports the
// last few seconds.
func (s *Service) CheckNew(ctx context.Context, userID int64, role domain.Role, orderID int64) (*CheckResult, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !o.AccessibleBy(userID, role) {
		return nil, ErrForbidden
	}

	now := s.now()
	since := s.swapWatermark(watermarkKey{userID: userID, orderID: orderID}, now)

	latest, err := s.messages.LatestSince(ctx, orderID, since)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return &CheckResult{}, nil
	}
	return &CheckResult{HasNewMessages: true, LastMessage: latest}, nil
}

// Conversations lists the user's orders by recent activity for the
// messages sidebar.
func (s *Service) Conversations(ctx context.Context, userID int64) (*ConversationsPage, error) {
	orders, err := s.orders.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ConversationsPage{Orders: orders}, nil
}

func (s *Service) swapWatermark(key watermarkKey, now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	since, ok := s.watermarks[key]
	if !ok {
		since = now.Add(-checkLookback)
	}
	s.watermarks[key] = now
	return since
}
