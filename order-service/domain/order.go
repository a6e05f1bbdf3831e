package domain

import (
	"context"
	"time"

	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "created"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusCompleted  OrderStatus = "completed"
)

// Order aggregate root
type Order struct {
	ID                 models.ID
	CustomerID         string
	TotalAmount        float64
	Items              []models.OrderItem
	Status             OrderStatus
	CancellationReason string
	CancelledAt        *time.Time
	Timestamps         models.Timestamps
	Version            models.Version

	events []*events.Event
}

// CreateOrder factory method
func CreateOrder(customerID string, totalAmount float64, items []models.OrderItem) (*Order, error) {
	if customerID == "" {
		return nil, errors.New("customer ID is required")
	}

	if totalAmount <= 0 {
		return nil, errors.New("total amount must be positive")
	}

	if len(items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	order := &Order{
		ID:          models.GenerateUUID(),
		CustomerID:  customerID,
		TotalAmount: totalAmount,
		Items:       items,
		Status:      OrderStatusCreated,
		Timestamps:  models.NewTimestamps(),
		Version:     models.NewVersion(),
	}

	event := events.NewEvent(order.ID, events.OrderCreatedEvent, OrderCreatedData{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
	})

	order.recordEvent(event)
	return order, nil
}

// Process marks the order as processing
func (o *Order) Process() error {
	if o.Status != OrderStatusCreated {
		return errors.New("order can only be processed from created status")
	}

	o.Status = OrderStatusProcessing
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	return nil
}

// Complete marks the order as completed
func (o *Order) Complete() error {
	if o.Status == OrderStatusCancelled {
		return errors.New("cannot complete a cancelled order")
	}

	o.Status = OrderStatusCompleted
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderCompletedEvent, OrderCompletedData{
		OrderID:     o.ID,
		CompletedAt: time.Now(),
	})

	o.recordEvent(event)
	return nil
}

// Cancel marks the order as cancelled with a reason
func (o *Order) Cancel(reason string) error {
	if o.Status == OrderStatusCompleted {
		return errors.New("cannot cancel a completed order")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancellationReason = reason
	o.CancelledAt = &now
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderCancelledEvent, OrderCancelledData{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		Reason:      reason,
		CancelledAt: now,
	})

	o.recordEvent(event)
	return nil
}

// Events returns domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears domain events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Order) recordEvent(event *events.Event) {
	o.events = append(o.events, event)
}

// Event Data Structures
type OrderCreatedData struct {
	OrderID     models.ID          `json:"order_id"`
	CustomerID  string             `json:"customer_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
}

type OrderCompletedData struct {
	OrderID     models.ID `json:"order_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type OrderCancelledData struct {
	OrderID     models.ID `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// OrderRepository interface
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*Order, error)
}
