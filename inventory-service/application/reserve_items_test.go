package application

import (
	"context"
	"testing"

	"github.com/orderstack/order-system/inventory-service/domain"
	"github.com/orderstack/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStockRepository is a mock implementation of domain.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Save(ctx context.Context, item *domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) FindByProductID(ctx context.Context, productID string) (*domain.StockItem, error) {
	args := m.Called(ctx, productID)

	var r0 *domain.StockItem
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.StockItem)
	}
	return r0, args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context) ([]*domain.StockItem, error) {
	args := m.Called(ctx)

	var r0 []*domain.StockItem
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*domain.StockItem)
	}
	return r0, args.Error(1)
}

func stockOf(t *testing.T, productID string, quantity int) *domain.StockItem {
	t.Helper()
	item, err := domain.NewStockItem(productID, productID, quantity)
	assert.NoError(t, err)
	return item
}

func TestReserveItems_Execute_Success(t *testing.T) {
	repo := &MockStockRepository{}
	uc := NewReserveItems(repo, nil)

	stock := stockOf(t, "product-1", 10)
	repo.On("FindByProductID", mock.Anything, "product-1").Return(stock, nil).Once()
	repo.On("Save", mock.Anything, stock).Return(nil).Once()

	_, err := uc.Execute(context.Background(), &ReserveItemsCommand{
		OrderID: "order-1",
		Items:   []models.OrderItem{{ProductID: "product-1", Quantity: 4}},
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, stock.AvailableQuantity)
	assert.Equal(t, 4, stock.ReservedQuantity)
	repo.AssertExpectations(t)
}

func TestReserveItems_Execute_InsufficientStock(t *testing.T) {
	repo := &MockStockRepository{}
	uc := NewReserveItems(repo, nil)

	stock := stockOf(t, "product-1", 2)
	repo.On("FindByProductID", mock.Anything, "product-1").Return(stock, nil).Once()

	_, err := uc.Execute(context.Background(), &ReserveItemsCommand{
		OrderID: "order-1",
		Items:   []models.OrderItem{{ProductID: "product-1", Quantity: 5}},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Equal(t, 2, stock.AvailableQuantity)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReserveItems_Execute_RollsBackEarlierLines(t *testing.T) {
	repo := &MockStockRepository{}
	uc := NewReserveItems(repo, nil)

	first := stockOf(t, "product-1", 10)
	second := stockOf(t, "product-2", 1)

	repo.On("FindByProductID", mock.Anything, "product-1").Return(first, nil)
	repo.On("FindByProductID", mock.Anything, "product-2").Return(second, nil).Once()
	repo.On("Save", mock.Anything, first).Return(nil)

	_, err := uc.Execute(context.Background(), &ReserveItemsCommand{
		OrderID: "order-1",
		Items: []models.OrderItem{
			{ProductID: "product-1", Quantity: 3},
			{ProductID: "product-2", Quantity: 5},
		},
	})

	assert.Error(t, err)
	// The first line was reserved, then released again.
	assert.Equal(t, 10, first.AvailableQuantity)
	assert.Equal(t, 0, first.ReservedQuantity)
}

func TestReserveItems_Execute_RequiresOrderID(t *testing.T) {
	repo := &MockStockRepository{}
	uc := NewReserveItems(repo, nil)

	_, err := uc.Execute(context.Background(), &ReserveItemsCommand{
		Items: []models.OrderItem{{ProductID: "product-1", Quantity: 1}},
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything)
}
