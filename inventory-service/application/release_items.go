package application

import (
	"context"
	"log"

	"github.com/orderstack/order-system/inventory-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// ReleaseItemsCommand returns reserved stock to the available pool
type ReleaseItemsCommand struct {
	OrderID string             `json:"order_id"`
	Items   []models.OrderItem `json:"items"`
}

// ReleaseItemsResponse reports the release outcome
type ReleaseItemsResponse struct {
	OrderID string `json:"order_id"`
}

// ReleaseItems use case. Release is best-effort per line: compensation
// callers need every releasable line released even when one fails.
type ReleaseItems struct {
	stockRepository domain.StockRepository
	eventPublisher  events.Publisher
}

// NewReleaseItems creates a new ReleaseItems use case
func NewReleaseItems(
	stockRepository domain.StockRepository,
	eventPublisher events.Publisher,
) *ReleaseItems {
	return &ReleaseItems{
		stockRepository: stockRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute executes the release items command
func (uc *ReleaseItems) Execute(ctx context.Context, cmd *ReleaseItemsCommand) (*ReleaseItemsResponse, error) {
	if len(cmd.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	var firstErr error
	for _, item := range cmd.Items {
		err := uc.releaseOne(ctx, cmd.OrderID, item)
		if err == nil {
			continue
		}
		// Unknown products are tolerated: a release for a line that
		// was never stocked is a no-op, not a failure.
		if errors.Is(err, domain.ErrProductNotFound) {
			log.Printf("Skipping release of unknown product %s", item.ProductID)
			continue
		}
		log.Printf("Failed to release %s: %v", item.ProductID, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return &ReleaseItemsResponse{OrderID: cmd.OrderID}, nil
}

func (uc *ReleaseItems) releaseOne(ctx context.Context, orderID string, item models.OrderItem) error {
	stock, err := uc.stockRepository.FindByProductID(ctx, item.ProductID)
	if err != nil {
		return errors.Wrapf(err, "failed to load product %s", item.ProductID)
	}

	if err := stock.Release(orderID, item.Quantity); err != nil {
		return err
	}

	if err := uc.stockRepository.Save(ctx, stock); err != nil {
		return errors.Wrapf(err, "failed to save product %s", item.ProductID)
	}

	uc.publishEvents(ctx, stock)
	return nil
}

func (uc *ReleaseItems) publishEvents(ctx context.Context, stock *domain.StockItem) {
	if uc.eventPublisher == nil {
		return
	}

	if err := uc.eventPublisher.Publish(ctx, stock.Events()...); err != nil {
		log.Printf("Failed to publish stock events: %v", err)
		return
	}

	stock.ClearEvents()
}
