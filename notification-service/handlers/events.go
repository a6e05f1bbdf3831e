package handlers

import (
	"context"
	"fmt"

	"github.com/orderstack/order-system/notification-service/application"
	"github.com/orderstack/order-system/notification-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/pkg/errors"
)

// SagaEventHandlers records an audit notification for every saga
// lifecycle event that arrives on the queue
type SagaEventHandlers struct {
	sendNotification *application.SendNotification
}

// NewSagaEventHandlers creates new saga event handlers
func NewSagaEventHandlers(sendNotification *application.SendNotification) *SagaEventHandlers {
	return &SagaEventHandlers{
		sendNotification: sendNotification,
	}
}

// sagaEventData is the payload the orchestrator attaches to lifecycle events
type sagaEventData struct {
	TransactionID string `json:"transaction_id"`
	CustomerID    string `json:"customer_id"`
	OrderID       string `json:"order_id"`
	State         string `json:"state"`
}

// Handle implements the events.EventHandler interface
func (h *SagaEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.SagaStartedEvent, events.SagaCompletedEvent,
		events.SagaFailedEvent, events.SagaCompensatedEvent:
		return h.recordAuditTrail(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *SagaEventHandlers) HandlerID() string {
	return "notification-service-saga-handler"
}

func (h *SagaEventHandlers) recordAuditTrail(ctx context.Context, event *events.Event) error {
	var data sagaEventData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to parse saga event data")
	}

	if data.CustomerID == "" {
		// Nothing to attribute the audit entry to, drop it.
		return nil
	}

	cmd := &application.SendNotificationCommand{
		RecipientID: data.CustomerID,
		Type:        string(domain.NotificationSagaAudit),
		Message:     fmt.Sprintf("Transaction %s is now %s", data.TransactionID, data.State),
		Metadata: map[string]string{
			"transaction_id": data.TransactionID,
			"order_id":       data.OrderID,
			"event_type":     event.EventType,
		},
	}

	if _, err := h.sendNotification.Execute(ctx, cmd); err != nil {
		return errors.Wrap(err, "failed to record audit notification")
	}

	return nil
}
