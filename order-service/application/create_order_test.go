package application

import (
	"context"
	"testing"

	"github.com/orderstack/order-system/order-service/domain"
	"github.com/orderstack/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	args := m.Called(ctx, id)

	var r0 *domain.Order
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.Order)
	}
	return r0, args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error) {
	args := m.Called(ctx, customerID)

	var r0 []*domain.Order
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*domain.Order)
	}
	return r0, args.Error(1)
}

func TestCreateOrder_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *CreateOrderCommand
		setupMocks    func(*MockOrderRepository)
		expectedError string
	}{
		{
			name: "successful order creation",
			command: &CreateOrderCommand{
				CustomerID:  "customer-1",
				TotalAmount: 49.90,
				Items:       []models.OrderItem{{ProductID: "product-1", Quantity: 1, Price: 49.90}},
			},
			setupMocks: func(repo *MockOrderRepository) {
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
			},
		},
		{
			name: "missing customer",
			command: &CreateOrderCommand{
				TotalAmount: 49.90,
				Items:       []models.OrderItem{{ProductID: "product-1", Quantity: 1}},
			},
			setupMocks:    func(repo *MockOrderRepository) {},
			expectedError: "customer ID is required",
		},
		{
			name: "non-positive amount",
			command: &CreateOrderCommand{
				CustomerID: "customer-1",
				Items:      []models.OrderItem{{ProductID: "product-1", Quantity: 1}},
			},
			setupMocks:    func(repo *MockOrderRepository) {},
			expectedError: "total amount must be positive",
		},
		{
			name: "empty items",
			command: &CreateOrderCommand{
				CustomerID:  "customer-1",
				TotalAmount: 10,
			},
			setupMocks:    func(repo *MockOrderRepository) {},
			expectedError: "at least one item is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockOrderRepository{}
			tt.setupMocks(repo)

			uc := NewCreateOrder(repo, nil)
			response, err := uc.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, response)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, response.OrderID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCancelOrder_Execute(t *testing.T) {
	repo := &MockOrderRepository{}

	order, err := domain.CreateOrder("customer-1", 20, []models.OrderItem{{ProductID: "product-1", Quantity: 1}})
	assert.NoError(t, err)
	order.ClearEvents()

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
	repo.On("Save", mock.Anything, order).Return(nil).Once()

	uc := NewCancelOrder(repo, nil)
	response, err := uc.Execute(context.Background(), &CancelOrderCommand{
		OrderID: order.ID.String(),
		Reason:  "transaction failed",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.OrderStatusCancelled), response.Status)
	assert.Equal(t, "transaction failed", order.CancellationReason)
	assert.NotNil(t, order.CancelledAt)
	repo.AssertExpectations(t)
}

func TestCancelOrder_Execute_CompletedOrder(t *testing.T) {
	repo := &MockOrderRepository{}

	order, err := domain.CreateOrder("customer-1", 20, []models.OrderItem{{ProductID: "product-1", Quantity: 1}})
	assert.NoError(t, err)
	assert.NoError(t, order.Complete())

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()

	uc := NewCancelOrder(repo, nil)
	_, err = uc.Execute(context.Background(), &CancelOrderCommand{
		OrderID: order.ID.String(),
		Reason:  "transaction failed",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cancel a completed order")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
