package message

import "tutorhub/internal/domain"

type SendRequest struct {
	OrderID string `form:"orderId" json:"order_id"`
	Content string `form:"content" json:"content"`
}

// CheckResult is the polling payload: whether something arrived since
// the caller last asked, and the newest message when it did.
type CheckResult struct {
	HasNewMessages bool            `json:"hasNewMessages"`
	LastMessage    *domain.Message `json:"lastMessage,omitempty"`
}

type ConversationsPage struct {
	Orders []domain.Order `json:"orders"`
}
