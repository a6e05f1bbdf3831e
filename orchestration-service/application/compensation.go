package application

import (
	"context"
	"fmt"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// CompensationEngine rolls back a failed saga in reverse step order,
// gated by the transaction's progress flags. Compensation is best-effort
// and non-transactional: each action is attempted independently and a
// failure in one never skips the others. Failed compensations are logged
// and not retried.
type CompensationEngine struct {
	orders        domain.OrderClient
	inventory     domain.InventoryClient
	notifications domain.NotificationClient
	logs          domain.LogClient
}

// NewCompensationEngine creates a new CompensationEngine
func NewCompensationEngine(
	orders domain.OrderClient,
	inventory domain.InventoryClient,
	notifications domain.NotificationClient,
	logs domain.LogClient,
) *CompensationEngine {
	return &CompensationEngine{
		orders:        orders,
		inventory:     inventory,
		notifications: notifications,
		logs:          logs,
	}
}

// Compensate undoes the transaction's recorded progress. failedService
// names the step/service that caused the saga to fail; it is carried in
// the customer's failure notification.
func (e *CompensationEngine) Compensate(ctx context.Context, tx *domain.SagaTransaction, failedService string) {
	ctx, span := telemetry.StartSpan(ctx, "saga.compensate")
	defer span.End()

	tx.BeginCompensation()

	if tx.OrderCreated {
		resp, err := e.orders.CancelOrder(ctx, &domain.CancelOrderRequest{
			OrderID: tx.OrderID,
			Reason:  "transaction failed",
		})
		if err != nil {
			e.logError(ctx, fmt.Sprintf("failed to cancel order %s: %v", tx.OrderID, err))
		} else if !resp.Success {
			e.logError(ctx, fmt.Sprintf("order %s cancellation rejected: %s", tx.OrderID, resp.Message))
		}
	}

	if tx.InventoryReserved {
		resp, err := e.inventory.ReleaseItems(ctx, &domain.ReleaseItemsRequest{
			OrderID: tx.OrderID,
			Items:   tx.ReservedItems,
		})
		if err != nil {
			e.logError(ctx, fmt.Sprintf("failed to release items for order %s: %v", tx.OrderID, err))
		} else if !resp.Success {
			e.logError(ctx, fmt.Sprintf("item release rejected for order %s: %s", tx.OrderID, resp.Message))
		}
	}

	// The failure notification goes out regardless of how far the saga got.
	resp, err := e.notifications.SendFailureNotification(ctx, &domain.SendFailureNotificationRequest{
		RecipientID:   tx.CustomerID,
		ErrorMessage:  "Your order could not be processed",
		TransactionID: tx.TransactionID,
		ServiceName:   failedService,
	})
	if err != nil {
		e.logError(ctx, fmt.Sprintf("failed to send failure notification for transaction %s: %v", tx.TransactionID, err))
	} else if !resp.Success {
		e.logError(ctx, fmt.Sprintf("failure notification rejected for transaction %s: %s", tx.TransactionID, resp.Message))
	}

	tx.MarkCompensated()

	telemetry.RecordCounter(ctx, "saga_compensations_total", "Saga compensations", 1,
		attribute.String("failed_service", failedService),
	)
}

func (e *CompensationEngine) logError(ctx context.Context, message string) {
	if e.logs == nil {
		return
	}
	// Best-effort: a logging failure is swallowed.
	_ = e.logs.LogError(ctx, "compensation-engine", message)
}
