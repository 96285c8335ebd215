package repository

import (
	"context"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	tx := r.db.WithContext(ctx).Preload("Files").First(&o, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

// ListByOwner pages through one user's orders, newest first. status
// "all" is a wildcard; anything else is an exact match. A page past the
// end returns an empty slice, not an error.
func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID int64, status string, page, limit int) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", ownerID)
	if status != "all" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

// ListAvailable returns unclaimed orders open for claiming, most urgent
// deadline first.
func (r *OrderRepository) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	tx := r.db.WithContext(ctx).
		Where("writer_id IS NULL AND status IN ?", []domain.OrderStatus{domain.OrderPending, domain.OrderBidding}).
		Order("deadline ASC").
		Find(&orders)
	return orders, tx.Error
}

func (r *OrderRepository) ListByWriter(ctx context.Context, writerID int64, statuses ...domain.OrderStatus) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Where("writer_id = ?", writerID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var orders []domain.Order
	tx := q.Order("updated_at DESC").Find(&orders)
	return orders, tx.Error
}

func (r *OrderRepository) CountByWriter(ctx context.Context, writerID int64) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&domain.Order{}).Where("writer_id = ?", writerID).Count(&n)
	return n, tx.Error
}

func (r *OrderRepository) CountAvailable(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("writer_id IS NULL AND status IN ?", []domain.OrderStatus{domain.OrderPending, domain.OrderBidding}).
		Count(&n)
	return n, tx.Error
}

// Claim atomically attaches a writer to an unclaimed order. The
// conditional update only matches while writer_id is still NULL, so of
// two racing writers exactly one observes a row change; the loser gets
// claimed=false.
func (r *OrderRepository) Claim(ctx context.Context, orderID, writerID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND writer_id IS NULL", orderID).
		Updates(map[string]any{
			"writer_id": writerID,
			"status":    domain.OrderInProgress,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Assign is the admin path: sets the writer and moves the order to
// In Progress regardless of a previous assignment.
func (r *OrderRepository) Assign(ctx context.Context, orderID, writerID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"writer_id": writerID,
			"status":    domain.OrderInProgress,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// UpdateStatusByWriter applies a status change only if the order still
// belongs to that writer and still carries the expected status; a
// non-matching row means unauthorized or a lost race, reported as
// updated=false.
func (r *OrderRepository) UpdateStatusByWriter(ctx context.Context, orderID, writerID int64, from, to domain.OrderStatus, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	tx := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND writer_id = ? AND status = ?", orderID, writerID, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListRecent returns the newest orders for dashboards and the activity
// feed.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	tx := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&orders)
	return orders, tx.Error
}

// ListConversations returns a user's orders ordered by recent activity,
// for the messages sidebar.
func (r *OrderRepository) ListConversations(ctx context.Context, ownerID int64) ([]domain.Order, error) {
	var orders []domain.Order
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&orders)
	return orders, tx.Error
}
