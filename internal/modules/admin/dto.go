package admin

import (
	"time"

	"tutorhub/internal/domain"
)

type UpdateRoleRequest struct {
	UserID string `form:"userId" json:"user_id"`
	Role   string `form:"role" json:"role"`
}

type AssignOrderRequest struct {
	OrderID  string `form:"orderId" json:"order_id"`
	WriterID string `form:"writerId" json:"writer_id"`
}

// SeriesPoint is one bucket of a time series; Label is a date for daily
// series, a month for monthly ones.
type SeriesPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// StatusDistribution folds the five order statuses into the three
// buckets the dashboard chart shows. Cancelled orders are left out.
type StatusDistribution struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// DashboardStats is everything on the admin home view in one payload.
type DashboardStats struct {
	TotalRevenue      int64   `json:"total_revenue"`
	MonthlyRevenue    int64   `json:"monthly_revenue"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	MRR               int64   `json:"mrr"`
	TotalOrders       int64   `json:"total_orders"`
	PendingOrders     int64   `json:"pending_orders"`
	AvgOrderValue     float64 `json:"avg_order_value"`
	TotalStudents     int64   `json:"total_students"`
	TotalWriters      int64   `json:"total_writers"`
	CompletionRate    int     `json:"completion_rate"`
	ActiveStudents    int64   `json:"active_students"`
	InactiveStudents  int64   `json:"inactive_students"`
	AvgTurnaroundDays float64 `json:"avg_turnaround_days"`

	RevenueSeries []SeriesPoint      `json:"revenue_series"`
	SignupSeries  []SeriesPoint      `json:"signup_series"`
	Statuses      StatusDistribution `json:"statuses"`
	Retention     []SeriesPoint      `json:"retention"`
}

type WriterPerformance struct {
	WriterID  int64  `json:"writer_id"`
	Name      string `json:"name"`
	Completed int64  `json:"completed"`
	Earnings  int64  `json:"earnings"`
}

type AnalyticsPage struct {
	TopWriters   []WriterPerformance `json:"top_writers"`
	MonthlyTrend []SeriesPoint       `json:"monthly_trend"`
}

// FinancialPage splits completed-order revenue into the platform's cut
// and writer payouts.
type FinancialPage struct {
	TotalRevenue  int64          `json:"total_revenue"`
	PlatformFees  int64          `json:"platform_fees"`
	WriterPayouts int64          `json:"writer_payouts"`
	Recent        []domain.Order `json:"recent"`
}

// OrderDetailPage pairs one order with the writer roster so the admin
// can reassign it in place.
type OrderDetailPage struct {
	Order   *domain.Order `json:"order"`
	Writers []domain.User `json:"writers"`
}

type ActivityItem struct {
	When time.Time `json:"when"`
	Line string    `json:"line"`
}

type ActivityPage struct {
	Items []ActivityItem `json:"items"`
}
