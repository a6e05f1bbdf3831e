package application

import (
	"context"
	"fmt"
	"log"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/orderstack/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// Service names carried in step errors and failure notifications
const (
	ServiceOrder        = "order-service"
	ServiceInventory    = "inventory-service"
	ServicePayment      = "payment-gateway"
	ServiceNotification = "notification-service"
)

// Notification types understood by the notification collaborator
const (
	NotificationOrderCompleted = "order_completed"
	NotificationOrderCancelled = "order_cancelled"
)

// ProcessOrderCommand is the front-door request for one order saga
type ProcessOrderCommand struct {
	CustomerID  string             `json:"customer_id"`
	Card        domain.CardDetails `json:"card"`
	TotalAmount float64            `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
}

// ProcessOrderResponse identifies the completed transaction
type ProcessOrderResponse struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
}

// ProcessOrder drives the order saga: create order, check and reserve
// stock, process payment with endpoint failover, send the success
// notification. Steps run strictly sequentially; any failure triggers
// compensation of the recorded progress and removes the transaction
// from the registry.
type ProcessOrder struct {
	registry      *domain.TransactionRegistry
	orders        domain.OrderClient
	inventory     domain.InventoryClient
	payments      PaymentProcessor
	notifications domain.NotificationClient
	logs          domain.LogClient
	compensator   *CompensationEngine
	publisher     events.Publisher
}

// NewProcessOrder creates the saga orchestrator use case. publisher may
// be nil; saga lifecycle events are best-effort.
func NewProcessOrder(
	registry *domain.TransactionRegistry,
	orders domain.OrderClient,
	inventory domain.InventoryClient,
	payments PaymentProcessor,
	notifications domain.NotificationClient,
	logs domain.LogClient,
	compensator *CompensationEngine,
	publisher events.Publisher,
) *ProcessOrder {
	return &ProcessOrder{
		registry:      registry,
		orders:        orders,
		inventory:     inventory,
		payments:      payments,
		notifications: notifications,
		logs:          logs,
		compensator:   compensator,
		publisher:     publisher,
	}
}

// Execute runs the saga end to end
func (uc *ProcessOrder) Execute(ctx context.Context, cmd *ProcessOrderCommand) (*ProcessOrderResponse, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, domain.NewStepError("validation", domain.KindValidation, err.Error(), err)
	}

	ctx, span := telemetry.StartSpan(ctx, "saga.process_order")
	defer span.End()

	tx := domain.NewSagaTransaction(cmd.CustomerID)
	uc.registry.Put(tx)
	span.SetAttributes(attribute.String("transaction_id", tx.TransactionID))

	uc.publishSagaEvent(ctx, tx, events.SagaStartedEvent)

	if stepErr := uc.createOrder(ctx, tx, cmd); stepErr != nil {
		return nil, uc.failSaga(ctx, tx, stepErr)
	}

	if stepErr := uc.reserveInventory(ctx, tx, cmd); stepErr != nil {
		return nil, uc.failSaga(ctx, tx, stepErr)
	}

	if stepErr := uc.processPayment(ctx, tx, cmd); stepErr != nil {
		return nil, uc.failSaga(ctx, tx, stepErr)
	}

	if stepErr := uc.sendSuccessNotification(ctx, tx); stepErr != nil {
		// A failed success-notification fails the whole saga even though
		// order, inventory and payment already succeeded. Compensation
		// then cancels work that was, from the customer's perspective,
		// already committed.
		return nil, uc.failSaga(ctx, tx, stepErr)
	}

	uc.registry.Remove(tx.TransactionID)
	uc.publishSagaEvent(ctx, tx, events.SagaCompletedEvent)

	telemetry.RecordCounter(ctx, "saga_completed_total", "Completed sagas", 1)

	return &ProcessOrderResponse{
		TransactionID: tx.TransactionID,
		OrderID:       tx.OrderID,
	}, nil
}

func (uc *ProcessOrder) createOrder(ctx context.Context, tx *domain.SagaTransaction, cmd *ProcessOrderCommand) *domain.StepError {
	ctx, span := telemetry.StartSpan(ctx, "saga.step.create_order")
	defer span.End()

	resp, err := uc.orders.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID:  cmd.CustomerID,
		TotalAmount: cmd.TotalAmount,
		Items:       cmd.Items,
	})
	if err != nil {
		return domain.NewStepError(ServiceOrder, domain.KindUpstreamUnavailable, "order service unavailable", err)
	}
	if !resp.Success {
		return domain.NewStepError(ServiceOrder, domain.KindBusinessRejection, "order could not be created", errors.New(resp.Message))
	}

	tx.MarkOrderCreated(resp.OrderID)
	return nil
}

func (uc *ProcessOrder) reserveInventory(ctx context.Context, tx *domain.SagaTransaction, cmd *ProcessOrderCommand) *domain.StepError {
	ctx, span := telemetry.StartSpan(ctx, "saga.step.reserve_inventory")
	defer span.End()

	stock, err := uc.inventory.CheckStock(ctx, &domain.CheckStockRequest{Items: cmd.Items})
	if err != nil {
		return domain.NewStepError(ServiceInventory, domain.KindUpstreamUnavailable, "inventory service unavailable", err)
	}
	if !stock.Success {
		return domain.NewStepError(ServiceInventory, domain.KindBusinessRejection, "stock check failed", errors.New(stock.Message))
	}

	// Fail before reserving anything if any item is short; compensation
	// then skips the inventory release.
	for _, item := range stock.Items {
		if !item.Available {
			return domain.NewStepError(ServiceInventory, domain.KindBusinessRejection,
				fmt.Sprintf("insufficient stock for product %s", item.ProductID), nil)
		}
	}

	resp, err := uc.inventory.ReserveItems(ctx, &domain.ReserveItemsRequest{
		OrderID: tx.OrderID,
		Items:   cmd.Items,
	})
	if err != nil {
		return domain.NewStepError(ServiceInventory, domain.KindUpstreamUnavailable, "inventory service unavailable", err)
	}
	if !resp.Success {
		return domain.NewStepError(ServiceInventory, domain.KindBusinessRejection, "items could not be reserved", errors.New(resp.Message))
	}

	tx.MarkInventoryReserved(cmd.Items)
	return nil
}

func (uc *ProcessOrder) processPayment(ctx context.Context, tx *domain.SagaTransaction, cmd *ProcessOrderCommand) *domain.StepError {
	ctx, span := telemetry.StartSpan(ctx, "saga.step.process_payment")
	defer span.End()

	outcome, err := uc.payments.Process(ctx, &domain.ProcessPaymentRequest{
		CardNumber: cmd.Card.Number,
		CardHolder: cmd.Card.Holder,
		Expiry:     cmd.Card.Expiration,
	})
	if err != nil {
		if exhausted, ok := err.(*PaymentExhaustedError); ok {
			return domain.NewStepError(ServicePayment, domain.KindSagaFailure, exhausted.Error(), exhausted)
		}
		return domain.NewStepError(ServicePayment, domain.KindUpstreamUnavailable, "payment processing aborted", err)
	}

	span.SetAttributes(attribute.String("payment.endpoint", outcome.Endpoint))
	tx.MarkPaymentCompleted()
	return nil
}

func (uc *ProcessOrder) sendSuccessNotification(ctx context.Context, tx *domain.SagaTransaction) *domain.StepError {
	ctx, span := telemetry.StartSpan(ctx, "saga.step.send_notification")
	defer span.End()

	resp, err := uc.notifications.SendNotification(ctx, &domain.SendNotificationRequest{
		RecipientID: tx.CustomerID,
		Type:        NotificationOrderCompleted,
		Message:     fmt.Sprintf("Your order %s has been processed successfully", tx.OrderID),
		Metadata: map[string]string{
			"transaction_id": tx.TransactionID,
			"order_id":       tx.OrderID,
		},
	})
	if err != nil {
		return domain.NewStepError(ServiceNotification, domain.KindUpstreamUnavailable, "notification service unavailable", err)
	}
	if !resp.Success {
		return domain.NewStepError(ServiceNotification, domain.KindBusinessRejection, "notification could not be sent", errors.New(resp.Message))
	}

	tx.MarkNotificationSent()
	return nil
}

// failSaga runs compensation against the transaction's recorded
// progress, removes it from the registry and returns the step error.
// The caller sees the step's diagnostic message, never raw downstream
// error text.
func (uc *ProcessOrder) failSaga(ctx context.Context, tx *domain.SagaTransaction, stepErr *domain.StepError) error {
	uc.logStepFailure(ctx, stepErr)
	uc.publishSagaEvent(ctx, tx, events.SagaFailedEvent)

	uc.compensator.Compensate(ctx, tx, stepErr.Step)

	uc.registry.Remove(tx.TransactionID)
	uc.publishSagaEvent(ctx, tx, events.SagaCompensatedEvent)

	telemetry.RecordCounter(ctx, "saga_failed_total", "Failed sagas", 1,
		attribute.String("failed_service", stepErr.Step),
	)

	return stepErr
}

func (uc *ProcessOrder) logStepFailure(ctx context.Context, stepErr *domain.StepError) {
	if uc.logs == nil {
		return
	}
	msg := stepErr.Message
	if stepErr.Cause != nil {
		msg = fmt.Sprintf("%s: %v", stepErr.Message, stepErr.Cause)
	}
	// Best-effort: a logging failure never affects the saga outcome.
	_ = uc.logs.LogError(ctx, stepErr.Step, msg)
}

func (uc *ProcessOrder) publishSagaEvent(ctx context.Context, tx *domain.SagaTransaction, eventType string) {
	if uc.publisher == nil {
		return
	}

	event := events.NewEvent(models.ID(tx.TransactionID), eventType, map[string]string{
		"transaction_id": tx.TransactionID,
		"customer_id":    tx.CustomerID,
		"order_id":       tx.OrderID,
		"state":          string(tx.State),
	})

	if err := uc.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s for transaction %s: %v", eventType, tx.TransactionID, err)
	}
}

func (uc *ProcessOrder) validateCommand(cmd *ProcessOrderCommand) error {
	if cmd.CustomerID == "" {
		return errors.New("customer ID is required")
	}

	if cmd.TotalAmount <= 0 {
		return errors.New("total amount must be positive")
	}

	if len(cmd.Items) == 0 {
		return errors.New("at least one item is required")
	}

	for _, item := range cmd.Items {
		if item.ProductID == "" {
			return errors.New("product ID is required for every item")
		}
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
	}

	if cmd.Card.Number == "" || cmd.Card.Holder == "" || cmd.Card.Expiration == "" {
		return errors.New("card number, holder and expiration are required")
	}

	return nil
}
