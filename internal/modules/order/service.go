package order

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

const DefaultPageSize = 10

type Service struct {
	orders   OrderRepository
	messages MessageLister
}

func NewService(orders OrderRepository, messages MessageLister) *Service {
	return &Service{orders: orders, messages: messages}
}

// Place persists a new Pending order for the owner. Beyond numeric
// coercion nothing is validated; attachment metadata is stored as given
// and not verified against disk.
func (s *Service) Place(ctx context.Context, owner int64, req PlaceOrderRequest, files []domain.OrderFile) (*domain.Order, error) {
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		// The form posts a bare datetime without a zone.
		deadline, _ = time.Parse("2006-01-02T15:04", req.Deadline)
	}

	category := req.WriterCategory
	if category == "" {
		category = "Standard"
	}
	spacing := req.Spacing
	if spacing == "" {
		spacing = "Double Spaced"
	}

	o := &domain.Order{
		UserID:         owner,
		Title:          req.Title,
		Type:           req.Type,
		Subject:        req.Subject,
		Level:          req.Level,
		WriterCategory: category,
		Deadline:       deadline,
		Pages:          atoiOrZero(req.Pages),
		Spacing:        spacing,
		Instructions:   req.Instructions,
		Price:          atoiOrZero(req.Price),
		Status:         domain.OrderPending,
		Files:          files,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// PlaceFromAPI creates the reduced quote-pending order used by the app
// endpoint: one page, price 0, status Pending.
func (s *Service) PlaceFromAPI(ctx context.Context, owner int64, req APIPlaceOrderRequest) (*domain.Order, error) {
	if req.Subject == "" || req.Deadline == "" || req.Instructions == "" {
		return nil, ErrValidation
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		deadline, _ = time.Parse("2006-01-02", req.Deadline)
	}

	level := req.Level
	if level == "" {
		level = "College"
	}

	o := &domain.Order{
		UserID:         owner,
		Title:          req.Subject,
		Type:           "Assignment",
		Subject:        req.Subject,
		Level:          level,
		WriterCategory: "Standard",
		Deadline:       deadline,
		Pages:          1,
		Spacing:        "Double Spaced",
		Instructions:   req.Instructions,
		Price:          0,
		Status:         domain.OrderPending,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID collapses "absent" and "malformed id" into ErrNotFound; the
// caller never learns which it was.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListMine pages through the owner's orders. A page past the end comes
// back empty rather than failing.
func (s *Service) ListMine(ctx context.Context, owner int64, status string, page, limit int) (*OrderPage, error) {
	if status == "" {
		status = "all"
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	orders, total, err := s.orders.ListByOwner(ctx, owner, status, page, limit)
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:       orders,
		CurrentPage:  page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		StatusFilter: status,
	}, nil
}

// Detail loads an order plus its thread for a caller that has been
// authenticated; access is checked here, against the order itself.
func (s *Service) Detail(ctx context.Context, userID int64, role domain.Role, orderID int64) (*OrderDetail, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.AccessibleBy(userID, role) {
		return nil, ErrForbidden
	}

	msgs, err := s.messages.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{
		Order:    o,
		Messages: msgs,
		IsOwner:  o.UserID == userID,
		IsWriter: o.WriterID != nil && *o.WriterID == userID,
		IsAdmin:  role == domain.RoleAdmin,
	}, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
