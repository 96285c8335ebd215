package admin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

// platformFeeRate is the platform's cut of every completed order; the
// rest is the writer payout.
const platformFeeRate = 0.20

// Service works against the database directly: the admin views are
// aggregations across every table, and a repository per chart would
// add nothing.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func NewServiceWithClock(db *gorm.DB, now func() time.Time) *Service {
	return &Service{db: db, now: now}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	tx := s.db.WithContext(ctx).Order("created_at DESC").Find(&users)
	return users, tx.Error
}

// UpdateRole changes a user's role. An admin cannot change their own
// role; demoting yourself in a one-admin deployment would lock the
// admin area for good.
func (s *Service) UpdateRole(ctx context.Context, adminID, userID int64, role string) error {
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return ErrInvalidRole
	}
	if userID == adminID {
		return ErrSelfDemotion
	}

	tx := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("role", parsed)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AssignOrder hands an order to a writer, overriding any previous
// assignment. The assignee must actually hold the writer role.
func (s *Service) AssignOrder(ctx context.Context, orderID, writerID int64) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND role = ?", writerID, domain.RoleWriter).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotAWriter
	}

	tx := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"writer_id": writerID,
			"status":    domain.OrderInProgress,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Dashboard assembles the admin home metrics. Growth compares the
// trailing 30 days of completed revenue with the 30 days before that
// and reports 0 rather than infinity when the earlier window was
// empty.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	dayAgo30 := now.AddDate(0, 0, -30)
	dayAgo60 := now.AddDate(0, 0, -60)

	stats := &DashboardStats{}

	if err := s.sumRevenue(ctx, nil, nil, &stats.TotalRevenue); err != nil {
		return nil, err
	}
	if err := s.sumRevenue(ctx, &dayAgo30, nil, &stats.MonthlyRevenue); err != nil {
		return nil, err
	}

	var prior int64
	if err := s.sumRevenue(ctx, &dayAgo60, &dayAgo30, &prior); err != nil {
		return nil, err
	}
	if prior > 0 {
		stats.RevenueGrowth = roundTo(float64(stats.MonthlyRevenue-prior)/float64(prior)*100, 1)
	}
	stats.MRR = int64(math.Round(float64(stats.MonthlyRevenue) / 30))

	if err := s.db.WithContext(ctx).Model(&domain.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ?", domain.OrderPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(AVG(price), 0)").
		Scan(&stats.AvgOrderValue).Error; err != nil {
		return nil, err
	}
	stats.AvgOrderValue = roundTo(stats.AvgOrderValue, 2)
	if err := s.countRole(ctx, domain.RoleStudent, &stats.TotalStudents); err != nil {
		return nil, err
	}
	if err := s.countRole(ctx, domain.RoleWriter, &stats.TotalWriters); err != nil {
		return nil, err
	}

	var completed int64
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ?", domain.OrderCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	if stats.TotalOrders > 0 {
		stats.CompletionRate = int(math.Round(float64(completed) / float64(stats.TotalOrders) * 100))
	}

	var err error
	if stats.RevenueSeries, err = s.revenueSeries(ctx, now); err != nil {
		return nil, err
	}
	if stats.SignupSeries, err = s.signupSeries(ctx, now); err != nil {
		return nil, err
	}
	if stats.Statuses, err = s.statusDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.Retention, err = s.weeklyRetention(ctx, now); err != nil {
		return nil, err
	}

	// Active means "placed at least one order ever", not recently.
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Distinct("user_id").
		Count(&stats.ActiveStudents).Error; err != nil {
		return nil, err
	}
	stats.InactiveStudents = stats.TotalStudents - stats.ActiveStudents
	if stats.InactiveStudents < 0 {
		stats.InactiveStudents = 0
	}

	if stats.AvgTurnaroundDays, err = s.avgTurnaround(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// Analytics is the deeper reporting page: writer leaderboard and the
// 12-month revenue trend.
func (s *Service) Analytics(ctx context.Context) (*AnalyticsPage, error) {
	var top []WriterPerformance
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("orders.writer_id AS writer_id, users.name AS name, COUNT(*) AS completed, COALESCE(SUM(orders.price), 0) AS earnings").
		Joins("JOIN users ON users.id = orders.writer_id").
		Where("orders.status = ?", domain.OrderCompleted).
		Group("orders.writer_id, users.name").
		Order("earnings DESC").
		Limit(10).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}

	trend, err := s.monthlyTrend(ctx, s.now())
	if err != nil {
		return nil, err
	}

	return &AnalyticsPage{TopWriters: top, MonthlyTrend: trend}, nil
}

// Financial splits completed revenue into the platform fee and writer
// payouts, with the latest transactions listed.
func (s *Service) Financial(ctx context.Context) (*FinancialPage, error) {
	page := &FinancialPage{}
	if err := s.sumRevenue(ctx, nil, nil, &page.TotalRevenue); err != nil {
		return nil, err
	}
	page.PlatformFees = int64(math.Round(float64(page.TotalRevenue) * platformFeeRate))
	page.WriterPayouts = page.TotalRevenue - page.PlatformFees

	err := s.db.WithContext(ctx).
		Where("status = ?", domain.OrderCompleted).
		Order("completed_at DESC").
		Limit(20).
		Find(&page.Recent).Error
	return page, err
}

// OrderDetail loads one order together with the writer roster, for
// the assignment view.
func (s *Service) OrderDetail(ctx context.Context, orderID int64) (*OrderDetailPage, error) {
	var o domain.Order
	if err := s.db.WithContext(ctx).Preload("Files").First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var writers []domain.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", domain.RoleWriter).
		Order("name ASC").
		Find(&writers).Error; err != nil {
		return nil, err
	}

	return &OrderDetailPage{Order: &o, Writers: writers}, nil
}

// Activity is the site feed: the 50 newest orders rendered as one log
// line each.
func (s *Service) Activity(ctx context.Context) (*ActivityPage, error) {
	var orders []domain.Order
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(50).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	page := &ActivityPage{Items: make([]ActivityItem, 0, len(orders))}
	for _, o := range orders {
		page.Items = append(page.Items, ActivityItem{
			When: o.CreatedAt,
			Line: fmt.Sprintf("Order #%d (%s): %s", o.ID, o.Subject, o.Status),
		})
	}
	return page, nil
}

func (s *Service) sumRevenue(ctx context.Context, from, to *time.Time, out *int64) error {
	q := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ?", domain.OrderCompleted)
	if from != nil {
		q = q.Where("completed_at > ?", *from)
	}
	if to != nil {
		q = q.Where("completed_at <= ?", *to)
	}
	return q.Select("COALESCE(SUM(price), 0)").Scan(out).Error
}

func (s *Service) countRole(ctx context.Context, role domain.Role, out *int64) error {
	return s.db.WithContext(ctx).Model(&domain.User{}).
		Where("role = ?", role).
		Count(out).Error
}

// revenueSeries buckets the last 30 days of completed revenue by day.
// Bucketing happens in Go so the query stays portable across the
// sqlite and postgres dialects.
func (s *Service) revenueSeries(ctx context.Context, now time.Time) ([]SeriesPoint, error) {
	from := now.AddDate(0, 0, -30)

	var rows []struct {
		CompletedAt time.Time
		Price       int64
	}
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("completed_at, price").
		Where("status = ? AND completed_at > ?", domain.OrderCompleted, from).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDay[r.CompletedAt.Format("2006-01-02")] += r.Price
	}

	points := make([]SeriesPoint, 0, 30)
	for i := 29; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, SeriesPoint{Label: day, Value: byDay[day]})
	}
	return points, nil
}

func (s *Service) signupSeries(ctx context.Context, now time.Time) ([]SeriesPoint, error) {
	from := now.AddDate(0, 0, -7)

	var rows []struct {
		CreatedAt time.Time
	}
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Select("created_at").
		Where("created_at > ?", from).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDay[r.CreatedAt.Format("2006-01-02")]++
	}

	points := make([]SeriesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, SeriesPoint{Label: day, Value: byDay[day]})
	}
	return points, nil
}

func (s *Service) statusDistribution(ctx context.Context) (StatusDistribution, error) {
	var rows []struct {
		Status domain.OrderStatus
		N      int64
	}
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusDistribution{}, err
	}

	var dist StatusDistribution
	for _, r := range rows {
		switch r.Status {
		case domain.OrderPending, domain.OrderBidding:
			dist.Pending += r.N
		case domain.OrderInProgress:
			dist.InProgress += r.N
		case domain.OrderCompleted:
			dist.Completed += r.N
		}
	}
	return dist, nil
}

// weeklyRetention is a cohort rate per week, oldest week first: of the
// users created in week N, the share that placed at least one order in
// that same week, as a whole percent. An empty cohort reads as 0.
func (s *Service) weeklyRetention(ctx context.Context, now time.Time) ([]SeriesPoint, error) {
	from := now.AddDate(0, 0, -42)

	var users []struct {
		ID        int64
		CreatedAt time.Time
	}
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Select("id, created_at").
		Where("created_at > ?", from).
		Scan(&users).Error
	if err != nil {
		return nil, err
	}

	var orders []struct {
		UserID    int64
		CreatedAt time.Time
	}
	err = s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("user_id, created_at").
		Where("created_at > ?", from).
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}

	weekIdx := func(ts time.Time) int {
		age := now.Sub(ts)
		if age < 0 {
			return -1
		}
		return 5 - int(age.Hours()/(24*7))
	}

	cohorts := make([]map[int64]struct{}, 6)
	placers := make([]map[int64]struct{}, 6)
	for i := range cohorts {
		cohorts[i] = make(map[int64]struct{})
		placers[i] = make(map[int64]struct{})
	}
	for _, u := range users {
		if idx := weekIdx(u.CreatedAt); idx >= 0 && idx < 6 {
			cohorts[idx][u.ID] = struct{}{}
		}
	}
	for _, o := range orders {
		if idx := weekIdx(o.CreatedAt); idx >= 0 && idx < 6 {
			placers[idx][o.UserID] = struct{}{}
		}
	}

	points := make([]SeriesPoint, 6)
	for i := range points {
		active := 0
		for id := range cohorts[i] {
			if _, ok := placers[i][id]; ok {
				active++
			}
		}
		rate := int64(0)
		if len(cohorts[i]) > 0 {
			rate = int64(math.Round(float64(active) / float64(len(cohorts[i])) * 100))
		}
		start := now.AddDate(0, 0, -7*(6-i)).Format("2006-01-02")
		points[i] = SeriesPoint{Label: start, Value: rate}
	}
	return points, nil
}

func (s *Service) monthlyTrend(ctx context.Context, now time.Time) ([]SeriesPoint, error) {
	from := now.AddDate(0, -12, 0)

	var rows []struct {
		CompletedAt time.Time
		Price       int64
	}
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("completed_at, price").
		Where("status = ? AND completed_at > ?", domain.OrderCompleted, from).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]int64, len(rows))
	for _, r := range rows {
		byMonth[r.CompletedAt.Format("2006-01")] += r.Price
	}

	points := make([]SeriesPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		month := now.AddDate(0, -i, 0).Format("2006-01")
		points = append(points, SeriesPoint{Label: month, Value: byMonth[month]})
	}
	return points, nil
}

// avgTurnaround is the mean days from placing an order to its last
// update, across orders a writer has picked up.
func (s *Service) avgTurnaround(ctx context.Context) (float64, error) {
	var rows []struct {
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("created_at, updated_at").
		Where("writer_id IS NOT NULL AND status IN ?", []domain.OrderStatus{domain.OrderInProgress, domain.OrderCompleted}).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return 0, err
	}

	var total float64
	for _, r := range rows {
		total += r.UpdatedAt.Sub(r.CreatedAt).Hours() / 24
	}
	return roundTo(total/float64(len(rows)), 1), nil
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
