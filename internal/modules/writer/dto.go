package writer

import "tutorhub/internal/domain"

type ClaimRequest struct {
	OrderID string `form:"orderId" json:"order_id"`
}

type UpdateStatusRequest struct {
	OrderID string `form:"orderId" json:"order_id"`
	Status  string `form:"status" json:"status"`
}

// DashboardStats is the writer home view: workload, opportunity, and
// lifetime numbers side by side.
type DashboardStats struct {
	ActiveOrders    int            `json:"active_orders"`
	AvailableOrders int64          `json:"available_orders"`
	TotalEarnings   int            `json:"total_earnings"`
	MonthEarnings   int            `json:"month_earnings"`
	SuccessRate     int            `json:"success_rate"`
	Active          []domain.Order `json:"active"`
}

type EarningsPage struct {
	Completed []domain.Order `json:"completed"`
	Total     int            `json:"total"`
	ThisMonth int            `json:"this_month"`

	// Pending is the in-progress sum: earned once those orders complete.
	Pending int `json:"pending"`
}
