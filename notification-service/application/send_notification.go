package application

import (
	"context"
	"log"

	"github.com/orderstack/order-system/notification-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/pkg/errors"
)

// SendNotificationCommand represents the command to send a notification
type SendNotificationCommand struct {
	RecipientID string            `json:"recipient_id"`
	Type        string            `json:"type"`
	Message     string            `json:"message"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// SendNotificationResponse represents the response after sending
type SendNotificationResponse struct {
	NotificationID string `json:"notification_id"`
}

// SendNotification use case. Delivery here means recording and logging
// the notification; there is no external channel in local environments.
type SendNotification struct {
	notificationRepository domain.NotificationRepository
	eventPublisher         events.Publisher
}

// NewSendNotification creates a new SendNotification use case
func NewSendNotification(
	notificationRepository domain.NotificationRepository,
	eventPublisher events.Publisher,
) *SendNotification {
	return &SendNotification{
		notificationRepository: notificationRepository,
		eventPublisher:         eventPublisher,
	}
}

// Execute executes the send notification use case
func (uc *SendNotification) Execute(ctx context.Context, cmd *SendNotificationCommand) (*SendNotificationResponse, error) {
	notificationType := domain.NotificationType(cmd.Type)
	if cmd.Type == "" {
		notificationType = domain.NotificationSagaAudit
	}

	notification, err := domain.CreateNotification(cmd.RecipientID, notificationType, cmd.Message, cmd.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create notification")
	}

	if err := uc.notificationRepository.Save(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to save notification")
	}

	log.Printf("Notification to %s [%s]: %s", notification.RecipientID, notification.Type, notification.Message)

	uc.publishEvents(ctx, notification)

	return &SendNotificationResponse{
		NotificationID: notification.ID.String(),
	}, nil
}

func (uc *SendNotification) publishEvents(ctx context.Context, notification *domain.Notification) {
	if uc.eventPublisher == nil {
		return
	}

	if err := uc.eventPublisher.Publish(ctx, notification.Events()...); err != nil {
		log.Printf("Failed to publish notification events: %v", err)
		return
	}

	notification.ClearEvents()
}
