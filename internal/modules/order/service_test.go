package order

import (
	"context"
	"testing"

	"tutorhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	if args.Error(0) == nil {
		o.ID = 7
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListByOwner(ctx context.Context, ownerID int64, status string, page, limit int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, ownerID, status, page, limit)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

type MockMessageLister struct {
	mock.Mock
}

func (m *MockMessageLister) ListByOrder(ctx context.Context, orderID int64) ([]domain.Message, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func TestPlaceCoercesNumericFields(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, new(MockMessageLister))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Pages == 5 &&
			o.Price == 20 &&
			o.Status == domain.OrderPending &&
			o.WriterID == nil &&
			o.WriterCategory == "Standard" &&
			o.Spacing == "Double Spaced"
	})).Return(nil)

	o, err := svc.Place(context.Background(), 1, PlaceOrderRequest{
		Title:        "Essay on polling",
		Type:         "Essay",
		Subject:      "CS",
		Level:        "College",
		Deadline:     "2026-09-01T12:00",
		Pages:        "5",
		Instructions: "Double spaced please",
		Price:        "20",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(7), o.ID)
	repo.AssertExpectations(t)
}

func TestPlaceUnparseableNumbersBecomeZero(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, new(MockMessageLister))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Pages == 0 && o.Price == 0
	})).Return(nil)

	_, err := svc.Place(context.Background(), 1, PlaceOrderRequest{
		Pages: "five",
		Price: "twenty",
	}, nil)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPlaceFromAPIRequiresCoreFields(t *testing.T) {
	svc := NewService(new(MockOrderRepository), new(MockMessageLister))

	cases := []APIPlaceOrderRequest{
		{Deadline: "2026-09-01", Instructions: "x"},
		{Subject: "Math", Instructions: "x"},
		{Subject: "Math", Deadline: "2026-09-01"},
	}
	for _, req := range cases {
		_, err := svc.PlaceFromAPI(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestPlaceFromAPIDefaults(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, new(MockMessageLister))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Pages == 1 &&
			o.Price == 0 &&
			o.Level == "College" &&
			o.Type == "Assignment" &&
			o.Title == o.Subject
	})).Return(nil)

	_, err := svc.PlaceFromAPI(context.Background(), 1, APIPlaceOrderRequest{
		Subject:      "Statistics",
		Deadline:     "2026-09-01",
		Instructions: "ANOVA worksheet",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetByIDCollapsesMissingToNotFound(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, new(MockMessageLister))

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMinePagination(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, new(MockMessageLister))

	repo.On("ListByOwner", mock.Anything, int64(1), "all", 2, 10).
		Return([]domain.Order{{ID: 11}}, int64(23), nil)

	page, err := svc.ListMine(context.Background(), 1, "", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "all", page.StatusFilter)
	assert.Len(t, page.Orders, 1)
}

func TestDetailAccess(t *testing.T) {
	writerID := int64(3)
	ord := &domain.Order{ID: 5, UserID: 1, WriterID: &writerID}

	cases := []struct {
		name     string
		userID   int64
		role     domain.Role
		wantErr  error
		isOwner  bool
		isWriter bool
		isAdmin  bool
	}{
		{name: "owner", userID: 1, role: domain.RoleStudent, isOwner: true},
		{name: "assigned writer", userID: 3, role: domain.RoleWriter, isWriter: true},
		{name: "admin", userID: 9, role: domain.RoleAdmin, isAdmin: true},
		{name: "stranger", userID: 4, role: domain.RoleStudent, wantErr: ErrForbidden},
		{name: "other writer", userID: 8, role: domain.RoleWriter, wantErr: ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			msgs := new(MockMessageLister)
			svc := NewService(repo, msgs)

			repo.On("GetByID", mock.Anything, int64(5)).Return(ord, nil)
			msgs.On("ListByOrder", mock.Anything, int64(5)).Return([]domain.Message{{ID: 1}}, nil).Maybe()

			detail, err := svc.Detail(context.Background(), tc.userID, tc.role, 5)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.isOwner, detail.IsOwner)
			assert.Equal(t, tc.isWriter, detail.IsWriter)
			assert.Equal(t, tc.isAdmin, detail.IsAdmin)
			assert.Len(t, detail.Messages, 1)
		})
	}
}
