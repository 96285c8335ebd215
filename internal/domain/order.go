package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderBidding    OrderStatus = "Bidding"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// orderTransitions is the allowed status graph. Claiming and assignment
// move Pending/Bidding to In Progress; anything not listed is rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderBidding, OrderInProgress, OrderCancelled},
	OrderBidding:    {OrderPending, OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderCompleted, OrderCancelled},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id" validate:"required"`
	Title          string      `json:"title"`
	Type           string      `json:"type"`
	Subject        string      `json:"subject"`
	Level          string      `json:"level"`
	WriterCategory string      `json:"writer_category"`
	Deadline       time.Time   `json:"deadline"`
	Pages          int         `json:"pages"`
	Spacing        string      `json:"spacing"`
	Instructions   string      `json:"instructions,omitempty" gorm:"type:text"`
	Price          int         `json:"price"`
	Status         OrderStatus `json:"status"`

	// WriterID is nil while the order is unclaimed.
	WriterID    *int64     `json:"writer_id,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy *int64     `json:"completed_by,omitempty"`

	Files []OrderFile `json:"files,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessibleBy reports whether a user may view this order and its
// messages: the owner, the assigned writer, or any admin.
func (o *Order) AccessibleBy(userID int64, role Role) bool {
	if role == RoleAdmin {
		return true
	}
	if o.UserID == userID {
		return true
	}
	return o.WriterID != nil && *o.WriterID == userID
}

// OrderFile is attachment metadata captured at upload time. The file
// itself lives on disk under the uploader's directory.
type OrderFile struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"order_id"`
	OriginalName string    `json:"original_name"`
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
