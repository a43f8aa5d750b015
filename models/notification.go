package models

import (
	"time"
)

// 通知类型
const (
	NotifyOrder    = "order"
	NotifyRestock  = "restock"
	NotifyAccount  = "account"
	NotifyFeedback = "feedback"
)

type NotificationRecord struct {
	ID        int       `json:"id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationEvent is the AMQP message body. The consumer turns it into a
// NotificationRecord row.
type NotificationEvent struct {
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Occurred  time.Time `json:"occurred"`
}
