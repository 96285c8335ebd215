package message

import (
	"context"
	"testing"
	"time"

	"tutorhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = 1
	}
	return args.Error(0)
}

func (m *MockMessageRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Message, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) LatestSince(ctx context.Context, orderID int64, since time.Time) (*domain.Message, error) {
	args := m.Called(ctx, orderID, since)
	if msg := args.Get(0); msg != nil {
		return msg.(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListConversations(ctx context.Context, ownerID int64) ([]domain.Order, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func orderOwnedBy(owner int64) *domain.Order {
	return &domain.Order{ID: 5, UserID: owner, Status: domain.OrderInProgress}
}

func TestSendTrimsAndRejectsEmpty(t *testing.T) {
	svc := NewService(new(MockMessageRepository), new(MockOrderRepository))

	_, err := svc.Send(context.Background(), 1, "Alice", domain.RoleStudent, 5, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendSnapshotsSenderName(t *testing.T) {
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewService(msgs, orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(orderOwnedBy(1), nil)
	msgs.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.SenderName == "Alice" && m.Content == "hello" && m.OrderID == 5
	})).Return(nil)

	m, err := svc.Send(context.Background(), 1, "Alice", domain.RoleStudent, 5, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Content)
	msgs.AssertExpectations(t)
}

func TestSendDeniesStrangers(t *testing.T) {
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewService(msgs, orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(orderOwnedBy(1), nil)

	_, err := svc.Send(context.Background(), 9, "Mallory", domain.RoleStudent, 5, "hi")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSendMissingOrder(t *testing.T) {
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewService(msgs, orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Send(context.Background(), 1, "Alice", domain.RoleStudent, 5, "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckNewFirstPollLooksBackFiveSeconds(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewServiceWithClock(msgs, orders, func() time.Time { return now })

	orders.On("GetByID", mock.Anything, int64(5)).Return(orderOwnedBy(1), nil)
	msgs.On("LatestSince", mock.Anything, int64(5), now.Add(-5*time.Second)).Return(nil, nil)

	result, err := svc.CheckNew(context.Background(), 1, domain.RoleStudent, 5)
	require.NoError(t, err)
	assert.False(t, result.HasNewMessages)
	assert.Nil(t, result.LastMessage)
	msgs.AssertExpectations(t)
}

func TestCheckNewAdvancesWatermark(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewServiceWithClock(msgs, orders, func() time.Time { return now })

	orders.On("GetByID", mock.Anything, int64(5)).Return(orderOwnedBy(1), nil)
	msgs.On("LatestSince", mock.Anything, int64(5), now.Add(-5*time.Second)).Return(nil, nil).Once()

	_, err := svc.CheckNew(context.Background(), 1, domain.RoleStudent, 5)
	require.NoError(t, err)

	// Second poll measures from the previous poll's time, not the
	// lookback window.
	later := now.Add(10 * time.Second)
	svc.now = func() time.Time { return later }
	fresh := &domain.Message{ID: 2, OrderID: 5, Content: "new"}
	msgs.On("LatestSince", mock.Anything, int64(5), now).Return(fresh, nil).Once()

	result, err := svc.CheckNew(context.Background(), 1, domain.RoleStudent, 5)
	require.NoError(t, err)
	assert.True(t, result.HasNewMessages)
	assert.Equal(t, fresh, result.LastMessage)
	msgs.AssertExpectations(t)
}

func TestCheckNewWatermarksAreIsolatedPerOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewServiceWithClock(msgs, orders, func() time.Time { return now })

	orders.On("GetByID", mock.Anything, int64(5)).Return(orderOwnedBy(1), nil)
	orders.On("GetByID", mock.Anything, int64(6)).
		Return(&domain.Order{ID: 6, UserID: 1}, nil)

	msgs.On("LatestSince", mock.Anything, int64(5), now.Add(-5*time.Second)).Return(nil, nil)
	// Polling order 5 must not advance order 6's watermark.
	msgs.On("LatestSince", mock.Anything, int64(6), now.Add(-5*time.Second)).Return(nil, nil)

	_, err := svc.CheckNew(context.Background(), 1, domain.RoleStudent, 5)
	require.NoError(t, err)
	_, err = svc.CheckNew(context.Background(), 1, domain.RoleStudent, 6)
	require.NoError(t, err)
	msgs.AssertExpectations(t)
}

func TestCheckNewWatermarksAreIsolatedPerUser(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	writerID := int64(2)
	msgs := new(MockMessageRepository)
	orders := new(MockOrderRepository)
	svc := NewServiceWithClock(msgs, orders, func() time.Time { return now })

	orders.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Order{ID: 5, UserID: 1, WriterID: &writerID}, nil)

	// Both the student and the writer start from the lookback window;
	// one user's poll does not consume the other's.
	msgs.On("LatestSince", mock.Anything, int64(5), now.Add(-5*time.Second)).Return(nil, nil).Twice()

	_, err := svc.CheckNew(context.Background(), 1, domain.RoleStudent, 5)
	require.NoError(t, err)
	_, err = svc.CheckNew(context.Background(), 2, domain.RoleWriter, 5)
	require.NoError(t, err)
	msgs.AssertExpectations(t)
}
