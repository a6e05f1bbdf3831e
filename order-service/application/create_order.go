package application

import (
	"context"
	"log"

	"github.com/orderstack/order-system/order-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// CreateOrderCommand represents the command to create an order
type CreateOrderCommand struct {
	CustomerID  string             `json:"customer_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder use case
type CreateOrder struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
}

// NewCreateOrder creates a new CreateOrder use case
func NewCreateOrder(
	orderRepository domain.OrderRepository,
	eventPublisher events.Publisher,
) *CreateOrder {
	return &CreateOrder{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute executes the create order use case
func (uc *CreateOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*CreateOrderResponse, error) {
	order, err := domain.CreateOrder(cmd.CustomerID, cmd.TotalAmount, cmd.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	uc.publishEvents(ctx, order)

	return &CreateOrderResponse{
		OrderID: order.ID.String(),
	}, nil
}

// publishEvents publishes domain events best-effort. The order is already
// persisted, so a broker outage must not fail the request.
func (uc *CreateOrder) publishEvents(ctx context.Context, order *domain.Order) {
	if uc.eventPublisher == nil {
		return
	}

	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		log.Printf("Failed to publish order events: %v", err)
		return
	}

	order.ClearEvents()
}
