package domain

import (
	"context"
	"time"

	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// NotificationType classifies outbound notifications
type NotificationType string

const (
	NotificationOrderCompleted NotificationType = "order_completed"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationSagaFailure    NotificationType = "saga_failure"
	NotificationSagaAudit      NotificationType = "saga_audit"
)

// Notification aggregate root
type Notification struct {
	ID          models.ID
	RecipientID string
	Type        NotificationType
	Message     string
	Metadata    map[string]string
	SentAt      time.Time
	Timestamps  models.Timestamps
	Version     models.Version

	events []*events.Event
}

// CreateNotification factory method
func CreateNotification(recipientID string, notificationType NotificationType, message string, metadata map[string]string) (*Notification, error) {
	if recipientID == "" {
		return nil, errors.New("recipient ID is required")
	}

	if message == "" {
		return nil, errors.New("message is required")
	}

	if metadata == nil {
		metadata = make(map[string]string)
	}

	notification := &Notification{
		ID:          models.GenerateUUID(),
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
		Metadata:    metadata,
		SentAt:      time.Now(),
		Timestamps:  models.NewTimestamps(),
		Version:     models.NewVersion(),
	}

	event := events.NewEvent(notification.ID, events.NotificationSentEvent, NotificationSentData{
		NotificationID: notification.ID,
		RecipientID:    recipientID,
		Type:           string(notificationType),
		SentAt:         notification.SentAt,
	})

	notification.recordEvent(event)
	return notification, nil
}

// Events returns domain events
func (n *Notification) Events() []*events.Event {
	return n.events
}

// ClearEvents clears domain events
func (n *Notification) ClearEvents() {
	n.events = make([]*events.Event, 0)
}

func (n *Notification) recordEvent(event *events.Event) {
	n.events = append(n.events, event)
}

// NotificationSentData is the payload of notification.sent events
type NotificationSentData struct {
	NotificationID models.ID `json:"notification_id"`
	RecipientID    string    `json:"recipient_id"`
	Type           string    `json:"type"`
	SentAt         time.Time `json:"sent_at"`
}

// NotificationRepository interface
type NotificationRepository interface {
	Save(ctx context.Context, notification *Notification) error
	FindByRecipientID(ctx context.Context, recipientID string) ([]*Notification, error)
}
