package domain

import (
	"context"
	"fmt"

	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// StockItem aggregate root. Reserved quantity is held out of the
// available pool until the reservation is released or the order ships.
type StockItem struct {
	ID                models.ID
	ProductID         string
	ProductName       string
	AvailableQuantity int
	ReservedQuantity  int
	Timestamps        models.Timestamps
	Version           models.Version

	events []*events.Event
}

// NewStockItem factory method
func NewStockItem(productID, productName string, quantity int) (*StockItem, error) {
	if productID == "" {
		return nil, errors.New("product ID is required")
	}

	if quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}

	return &StockItem{
		ID:                models.GenerateUUID(),
		ProductID:         productID,
		ProductName:       productName,
		AvailableQuantity: quantity,
		Timestamps:        models.NewTimestamps(),
		Version:           models.NewVersion(),
	}, nil
}

// HasAvailable reports whether the requested quantity can be reserved
func (s *StockItem) HasAvailable(quantity int) bool {
	return quantity > 0 && s.AvailableQuantity >= quantity
}

// Reserve moves quantity from available to reserved
func (s *StockItem) Reserve(orderID string, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	if s.AvailableQuantity < quantity {
		return fmt.Errorf("insufficient stock for product %s: available %d, requested %d",
			s.ProductID, s.AvailableQuantity, quantity)
	}

	s.AvailableQuantity -= quantity
	s.ReservedQuantity += quantity
	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()

	event := events.NewEvent(s.ID, events.StockReservedEvent, StockReservedData{
		ProductID: s.ProductID,
		OrderID:   orderID,
		Quantity:  quantity,
	})

	s.recordEvent(event)
	return nil
}

// Release returns quantity from reserved to available. A release larger
// than the reserved amount is capped, releasing is idempotent-ish and
// must never fabricate stock.
func (s *StockItem) Release(orderID string, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	if quantity > s.ReservedQuantity {
		quantity = s.ReservedQuantity
	}

	if quantity == 0 {
		return nil
	}

	s.ReservedQuantity -= quantity
	s.AvailableQuantity += quantity
	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()

	event := events.NewEvent(s.ID, events.StockReleasedEvent, StockReleasedData{
		ProductID: s.ProductID,
		OrderID:   orderID,
		Quantity:  quantity,
	})

	s.recordEvent(event)
	return nil
}

// Events returns domain events
func (s *StockItem) Events() []*events.Event {
	return s.events
}

// ClearEvents clears domain events
func (s *StockItem) ClearEvents() {
	s.events = make([]*events.Event, 0)
}

func (s *StockItem) recordEvent(event *events.Event) {
	s.events = append(s.events, event)
}

// Event Data Structures
type StockReservedData struct {
	ProductID string `json:"product_id"`
	OrderID   string `json:"order_id"`
	Quantity  int    `json:"quantity"`
}

type StockReleasedData struct {
	ProductID string `json:"product_id"`
	OrderID   string `json:"order_id"`
	Quantity  int    `json:"quantity"`
}

// ErrProductNotFound is returned when the product does not exist
var ErrProductNotFound = errors.New("product not found")

// StockRepository interface
type StockRepository interface {
	Save(ctx context.Context, item *StockItem) error
	FindByProductID(ctx context.Context, productID string) (*StockItem, error)
	FindAll(ctx context.Context) ([]*StockItem, error)
}
