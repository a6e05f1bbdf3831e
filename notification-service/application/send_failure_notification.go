package application

import (
	"context"
	"fmt"

	"github.com/orderstack/order-system/notification-service/domain"
	"github.com/pkg/errors"
)

// SendFailureNotificationCommand notifies a customer that their
// transaction failed and was rolled back
type SendFailureNotificationCommand struct {
	RecipientID   string `json:"recipient_id"`
	ErrorMessage  string `json:"error_message"`
	TransactionID string `json:"transaction_id"`
	ServiceName   string `json:"service_name"`
}

// SendFailureNotification use case
type SendFailureNotification struct {
	sendNotification *SendNotification
}

// NewSendFailureNotification creates a new SendFailureNotification use case
func NewSendFailureNotification(sendNotification *SendNotification) *SendFailureNotification {
	return &SendFailureNotification{
		sendNotification: sendNotification,
	}
}

// Execute executes the send failure notification use case
func (uc *SendFailureNotification) Execute(ctx context.Context, cmd *SendFailureNotificationCommand) (*SendNotificationResponse, error) {
	if cmd.RecipientID == "" {
		return nil, errors.New("recipient ID is required")
	}

	message := fmt.Sprintf("Your transaction %s could not be completed: %s",
		cmd.TransactionID, cmd.ErrorMessage)

	return uc.sendNotification.Execute(ctx, &SendNotificationCommand{
		RecipientID: cmd.RecipientID,
		Type:        string(domain.NotificationSagaFailure),
		Message:     message,
		Metadata: map[string]string{
			"transaction_id": cmd.TransactionID,
			"failed_service": cmd.ServiceName,
		},
	})
}
