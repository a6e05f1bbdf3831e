package application

import (
	"context"
	"log"

	"github.com/orderstack/order-system/inventory-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// ReserveItemsCommand reserves stock for an order
type ReserveItemsCommand struct {
	OrderID string             `json:"order_id"`
	Items   []models.OrderItem `json:"items"`
}

// ReserveItemsResponse reports the reservation outcome
type ReserveItemsResponse struct {
	OrderID string `json:"order_id"`
}

// ReserveItems use case. Reservation is all-or-nothing: if any line
// cannot be reserved, lines reserved earlier in the same command are
// released again before the error is returned.
type ReserveItems struct {
	stockRepository domain.StockRepository
	eventPublisher  events.Publisher
}

// NewReserveItems creates a new ReserveItems use case
func NewReserveItems(
	stockRepository domain.StockRepository,
	eventPublisher events.Publisher,
) *ReserveItems {
	return &ReserveItems{
		stockRepository: stockRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute executes the reserve items command
func (uc *ReserveItems) Execute(ctx context.Context, cmd *ReserveItemsCommand) (*ReserveItemsResponse, error) {
	if cmd.OrderID == "" {
		return nil, errors.New("order ID is required")
	}

	if len(cmd.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	reserved := make([]models.OrderItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		if err := uc.reserveOne(ctx, cmd.OrderID, item); err != nil {
			uc.rollback(ctx, cmd.OrderID, reserved)
			return nil, err
		}
		reserved = append(reserved, item)
	}

	return &ReserveItemsResponse{OrderID: cmd.OrderID}, nil
}

func (uc *ReserveItems) reserveOne(ctx context.Context, orderID string, item models.OrderItem) error {
	stock, err := uc.stockRepository.FindByProductID(ctx, item.ProductID)
	if err != nil {
		return errors.Wrapf(err, "failed to load product %s", item.ProductID)
	}

	if err := stock.Reserve(orderID, item.Quantity); err != nil {
		return err
	}

	if err := uc.stockRepository.Save(ctx, stock); err != nil {
		return errors.Wrapf(err, "failed to save product %s", item.ProductID)
	}

	uc.publishEvents(ctx, stock)
	return nil
}

// rollback releases lines that were reserved before the failing one
func (uc *ReserveItems) rollback(ctx context.Context, orderID string, reserved []models.OrderItem) {
	for _, item := range reserved {
		stock, err := uc.stockRepository.FindByProductID(ctx, item.ProductID)
		if err != nil {
			log.Printf("Failed to roll back reservation for %s: %v", item.ProductID, err)
			continue
		}

		if err := stock.Release(orderID, item.Quantity); err != nil {
			log.Printf("Failed to roll back reservation for %s: %v", item.ProductID, err)
			continue
		}

		if err := uc.stockRepository.Save(ctx, stock); err != nil {
			log.Printf("Failed to save rollback for %s: %v", item.ProductID, err)
		}
	}
}

func (uc *ReserveItems) publishEvents(ctx context.Context, stock *domain.StockItem) {
	if uc.eventPublisher == nil {
		return
	}

	if err := uc.eventPublisher.Publish(ctx, stock.Events()...); err != nil {
		log.Printf("Failed to publish stock events: %v", err)
		return
	}

	stock.ClearEvents()
}
