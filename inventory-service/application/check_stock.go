package application

import (
	"context"

	"github.com/orderstack/order-system/inventory-service/domain"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// CheckStockQuery asks whether the requested quantities are available
type CheckStockQuery struct {
	Items []models.OrderItem `json:"items"`
}

// StockStatus reports availability for a single product
type StockStatus struct {
	ProductID         string `json:"product_id"`
	Available         bool   `json:"available"`
	AvailableQuantity int    `json:"available_quantity"`
}

// CheckStockResponse lists availability per requested product. An
// unknown product reports as unavailable rather than failing the query.
type CheckStockResponse struct {
	Items []StockStatus `json:"items"`
}

// CheckStock use case
type CheckStock struct {
	stockRepository domain.StockRepository
}

// NewCheckStock creates a new CheckStock use case
func NewCheckStock(stockRepository domain.StockRepository) *CheckStock {
	return &CheckStock{
		stockRepository: stockRepository,
	}
}

// Execute executes the check stock query
func (uc *CheckStock) Execute(ctx context.Context, query *CheckStockQuery) (*CheckStockResponse, error) {
	if len(query.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	statuses := make([]StockStatus, 0, len(query.Items))
	for _, item := range query.Items {
		stock, err := uc.stockRepository.FindByProductID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				statuses = append(statuses, StockStatus{
					ProductID: item.ProductID,
					Available: false,
				})
				continue
			}
			return nil, errors.Wrap(err, "failed to check stock")
		}

		statuses = append(statuses, StockStatus{
			ProductID:         item.ProductID,
			Available:         stock.HasAvailable(item.Quantity),
			AvailableQuantity: stock.AvailableQuantity,
		})
	}

	return &CheckStockResponse{Items: statuses}, nil
}
