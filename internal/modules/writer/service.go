package writer

import (
	"context"
	"errors"
	"math"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	orders OrderRepository
	now    func() time.Time
}

func NewService(orders OrderRepository) *Service {
	return &Service{orders: orders, now: time.Now}
}

func NewServiceWithClock(orders OrderRepository, now func() time.Time) *Service {
	return &Service{orders: orders, now: now}
}

// AvailableJobs lists unclaimed orders, most urgent deadline first.
func (s *Service) AvailableJobs(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAvailable(ctx)
}

// Claim attaches the writer to an unclaimed order. Of two racing
// writers exactly one wins; the loser gets ErrOrderTaken, as does a
// claim on an order that never existed.
func (s *Service) Claim(ctx context.Context, orderID, writerID int64) error {
	claimed, err := s.orders.Claim(ctx, orderID, writerID)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrOrderTaken
	}
	return nil
}

// UpdateStatus moves one of the writer's own orders along the status
// graph. Ownership and the expected current status are re-checked in
// the same update, so a concurrent change surfaces as ErrNotFound
// rather than a silent overwrite. Completing an order stamps who
// finished it and when.
func (s *Service) UpdateStatus(ctx context.Context, writerID, orderID int64, status string) error {
	to := domain.OrderStatus(status)
	if !to.Valid() {
		return ErrBadTransition
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if o.WriterID == nil || *o.WriterID != writerID {
		return ErrNotFound
	}
	if !o.Status.CanTransitionTo(to) {
		return ErrBadTransition
	}

	var extra map[string]any
	if to == domain.OrderCompleted {
		extra = map[string]any{
			"completed_at": s.now(),
			"completed_by": writerID,
		}
	}

	updated, err := s.orders.UpdateStatusByWriter(ctx, orderID, writerID, o.Status, to, extra)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// MyOrders is the writer's full assignment list, most recently touched
// first.
func (s *Service) MyOrders(ctx context.Context, writerID int64) ([]domain.Order, error) {
	return s.orders.ListByWriter(ctx, writerID)
}

// Dashboard assembles the writer home stats. Success rate is completed
// over everything ever assigned, rounded to a whole percent; a writer
// with no assignments shows 0, not a division error.
func (s *Service) Dashboard(ctx context.Context, writerID int64) (*DashboardStats, error) {
	active, err := s.orders.ListByWriter(ctx, writerID, domain.OrderInProgress)
	if err != nil {
		return nil, err
	}

	available, err := s.orders.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.orders.ListByWriter(ctx, writerID, domain.OrderCompleted)
	if err != nil {
		return nil, err
	}

	total, err := s.orders.CountByWriter(ctx, writerID)
	if err != nil {
		return nil, err
	}

	totalEarnings, monthEarnings := s.sumEarnings(completed)

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(len(completed)) / float64(total) * 100))
	}

	return &DashboardStats{
		ActiveOrders:    len(active),
		AvailableOrders: available,
		TotalEarnings:   totalEarnings,
		MonthEarnings:   monthEarnings,
		SuccessRate:     rate,
		Active:          active,
	}, nil
}

// Earnings lists the writer's completed orders with lifetime,
// current-month, and still-pending totals.
func (s *Service) Earnings(ctx context.Context, writerID int64) (*EarningsPage, error) {
	completed, err := s.orders.ListByWriter(ctx, writerID, domain.OrderCompleted)
	if err != nil {
		return nil, err
	}

	inProgress, err := s.orders.ListByWriter(ctx, writerID, domain.OrderInProgress)
	if err != nil {
		return nil, err
	}
	pending := 0
	for _, o := range inProgress {
		pending += o.Price
	}

	total, month := s.sumEarnings(completed)
	return &EarningsPage{Completed: completed, Total: total, ThisMonth: month, Pending: pending}, nil
}

func (s *Service) sumEarnings(completed []domain.Order) (total, month int) {
	now := s.now()
	for _, o := range completed {
		total += o.Price
		if o.CompletedAt != nil &&
			o.CompletedAt.Year() == now.Year() &&
			o.CompletedAt.Month() == now.Month() {
			month += o.Price
		}
	}
	return total, month
}
