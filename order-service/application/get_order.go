package application

import (
	"context"
	"time"

	"github.com/orderstack/order-system/order-service/domain"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// GetOrderQuery represents the query to get an order
type GetOrderQuery struct {
	OrderID string `json:"order_id"`
}

// GetOrderResponse represents the order details
type GetOrderResponse struct {
	OrderID            string             `json:"order_id"`
	CustomerID         string             `json:"customer_id"`
	TotalAmount        float64            `json:"total_amount"`
	Items              []models.OrderItem `json:"items"`
	Status             string             `json:"status"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// GetOrder use case
type GetOrder struct {
	orderRepository domain.OrderRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orderRepository domain.OrderRepository) *GetOrder {
	return &GetOrder{
		orderRepository: orderRepository,
	}
}

// Execute executes the get order use case
func (uc *GetOrder) Execute(ctx context.Context, query *GetOrderQuery) (*GetOrderResponse, error) {
	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return &GetOrderResponse{
		OrderID:            order.ID.String(),
		CustomerID:         order.CustomerID,
		TotalAmount:        order.TotalAmount,
		Items:              order.Items,
		Status:             string(order.Status),
		CancellationReason: order.CancellationReason,
		CreatedAt:          order.Timestamps.CreatedAt,
		UpdatedAt:          order.Timestamps.UpdatedAt,
	}, nil
}
