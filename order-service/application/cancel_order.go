package application

import (
	"context"
	"log"

	"github.com/orderstack/order-system/order-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// CancelOrderCommand represents the command to cancel an order
type CancelOrderCommand struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// CancelOrderResponse represents the response after cancelling an order
type CancelOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// CancelOrder use case
type CancelOrder struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
}

// NewCancelOrder creates a new CancelOrder use case
func NewCancelOrder(
	orderRepository domain.OrderRepository,
	eventPublisher events.Publisher,
) *CancelOrder {
	return &CancelOrder{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute executes the cancel order use case
func (uc *CancelOrder) Execute(ctx context.Context, cmd *CancelOrderCommand) (*CancelOrderResponse, error) {
	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	reason := cmd.Reason
	if reason == "" {
		reason = "cancelled by request"
	}

	if err := order.Cancel(reason); err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	uc.publishEvents(ctx, order)

	return &CancelOrderResponse{
		OrderID: order.ID.String(),
		Status:  string(order.Status),
	}, nil
}

func (uc *CancelOrder) publishEvents(ctx context.Context, order *domain.Order) {
	if uc.eventPublisher == nil {
		return
	}

	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		log.Printf("Failed to publish order events: %v", err)
		return
	}

	order.ClearEvents()
}
