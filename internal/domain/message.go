package domain

import "time"

// Message belongs to one order. SenderName is a point-in-time copy so
// renaming a user does not rewrite chat history.
type Message struct {
	ID             int64     `json:"id"`
	OrderID        int64     `json:"order_id" validate:"required" gorm:"index"`
	SenderID       int64     `json:"sender_id" validate:"required"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content" gorm:"type:text"`
	IsSystem       bool      `json:"is_system_message"`
	ReadByReceiver bool      `json:"read_by_receiver"`
	CreatedAt      time.Time `json:"created_at"`
}
