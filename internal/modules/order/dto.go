package order

import "tutorhub/internal/domain"

// PlaceOrderRequest is the full order form. Pages and price arrive as
// strings and are coerced; a value that does not parse becomes 0.
type PlaceOrderRequest struct {
	Title          string `form:"title" json:"title"`
	Type           string `form:"type" json:"type"`
	Subject        string `form:"subject" json:"subject"`
	Level          string `form:"level" json:"level"`
	WriterCategory string `form:"writerCategory" json:"writer_category"`
	Deadline       string `form:"deadline" json:"deadline"`
	Pages          string `form:"pages" json:"pages"`
	Spacing        string `form:"spacing" json:"spacing"`
	Instructions   string `form:"instructions" json:"instructions"`
	Price          string `form:"price" json:"price"`
}

// APIPlaceOrderRequest is the reduced app form: three required fields,
// optional level, price fixed at 0 pending a quote.
type APIPlaceOrderRequest struct {
	Subject      string `json:"subject"`
	Level        string `json:"level"`
	Deadline     string `json:"deadline"`
	Instructions string `json:"instructions"`
}

type OrderPage struct {
	Orders       []domain.Order `json:"orders"`
	CurrentPage  int            `json:"current_page"`
	TotalPages   int            `json:"total_pages"`
	StatusFilter string         `json:"status_filter"`
}

// OrderDetail is the shared order view: the order, its thread, and the
// caller's relationship to it.
type OrderDetail struct {
	Order    *domain.Order    `json:"order"`
	Messages []domain.Message `json:"messages"`
	IsOwner  bool             `json:"is_owner"`
	IsWriter bool             `json:"is_writer"`
	IsAdmin  bool             `json:"is_admin"`
}
