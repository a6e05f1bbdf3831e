package application

import (
	"context"
	"testing"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/orchestration-service/mocks"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentProcessor is a mock implementation of PaymentProcessor
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) Process(ctx context.Context, req *domain.ProcessPaymentRequest) (*domain.PaymentOutcome, error) {
	args := m.Called(ctx, req)

	var r0 *domain.PaymentOutcome
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.PaymentOutcome)
	}
	return r0, args.Error(1)
}

type sagaMocks struct {
	orders        *mocks.MockOrderClient
	inventory     *mocks.MockInventoryClient
	payments      *MockPaymentProcessor
	notifications *mocks.MockNotificationClient
	logs          *mocks.MockLogClient
}

func newSagaFixture() (*ProcessOrder, *domain.TransactionRegistry, *sagaMocks) {
	m := &sagaMocks{
		orders:        &mocks.MockOrderClient{},
		inventory:     &mocks.MockInventoryClient{},
		payments:      &MockPaymentProcessor{},
		notifications: &mocks.MockNotificationClient{},
		logs:          &mocks.MockLogClient{},
	}

	// Step failures are logged best-effort; tests don't assert on it.
	m.logs.On("LogError", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	registry := domain.NewTransactionRegistry()
	compensator := NewCompensationEngine(m.orders, m.inventory, m.notifications, m.logs)
	uc := NewProcessOrder(registry, m.orders, m.inventory, m.payments, m.notifications, m.logs, compensator, nil)

	return uc, registry, m
}

func validCommand() *ProcessOrderCommand {
	return &ProcessOrderCommand{
		CustomerID:  "customer-1",
		TotalAmount: 59.90,
		Card: domain.CardDetails{
			Number:     "4111111111111111",
			Holder:     "Jane Roe",
			Expiration: "12/27",
		},
		Items: []models.OrderItem{
			{ProductID: "product-1", Quantity: 2, Price: 29.95},
		},
	}
}

func allStockAvailable() *domain.CheckStockResponse {
	return &domain.CheckStockResponse{
		Success: true,
		Items: []domain.StockStatus{
			{ProductID: "product-1", Available: true, AvailableQuantity: 100},
		},
	}
}

func TestProcessOrder_Execute_Success(t *testing.T) {
	uc, registry, m := newSagaFixture()

	m.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.CreateOrderRequest")).
		Return(&domain.CreateOrderResponse{Success: true, OrderID: "order-1"}, nil).Once()
	m.inventory.On("CheckStock", mock.Anything, mock.AnythingOfType("*domain.CheckStockRequest")).
		Return(allStockAvailable(), nil).Once()
	m.inventory.On("ReserveItems", mock.Anything, mock.AnythingOfType("*domain.ReserveItemsRequest")).
		Return(&domain.ReserveItemsResponse{Success: true}, nil).Once()
	m.payments.On("Process", mock.Anything, mock.AnythingOfType("*domain.ProcessPaymentRequest")).
		Return(&domain.PaymentOutcome{TransactionID: "TX-1", Endpoint: "http://localhost:6001"}, nil).Once()
	m.notifications.On("SendNotification", mock.Anything, mock.MatchedBy(func(req *domain.SendNotificationRequest) bool {
		return req.RecipientID == "customer-1" && req.Type == NotificationOrderCompleted
	})).Return(&domain.NotificationResponse{Success: true}, nil).Once()

	resp, err := uc.Execute(context.Background(), validCommand())

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, "order-1", resp.OrderID)
	assert.Equal(t, 0, registry.Count(), "completed transaction must leave the registry")

	m.orders.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
	m.orders.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
	m.inventory.AssertNotCalled(t, "ReleaseItems", mock.Anything, mock.Anything)
}

func TestProcessOrder_Execute_ValidationFailure(t *testing.T) {
	uc, registry, m := newSagaFixture()

	cmd := validCommand()
	cmd.CustomerID = ""

	resp, err := uc.Execute(context.Background(), cmd)

	assert.Nil(t, resp)
	var stepErr *domain.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.KindValidation, stepErr.Kind)
	assert.Equal(t, 0, registry.Count())

	m.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	m.payments.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestProcessOrder_Execute_OrderServiceDown(t *testing.T) {
	uc, registry, m := newSagaFixture()

	m.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()
	// Nothing was created or reserved, only the failure notification goes out.
	m.notifications.On("SendFailureNotification", mock.Anything, mock.MatchedBy(func(req *domain.SendFailureNotificationRequest) bool {
		return req.RecipientID == "customer-1" && req.ServiceName == ServiceOrder
	})).Return(&domain.NotificationResponse{Success: true}, nil).Once()

	resp, err := uc.Execute(context.Background(), validCommand())

	assert.Nil(t, resp)
	var stepErr *domain.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.KindUpstreamUnavailable, stepErr.Kind)
	assert.Equal(t, ServiceOrder, stepErr.Step)
	assert.Equal(t, 0, registry.Count())

	m.orders.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
	m.inventory.AssertNotCalled(t, "ReleaseItems", mock.Anything, mock.Anything)
	m.notifications.AssertExpectations(t)
}

func TestProcessOrder_Execute_InsufficientStock(t *testing.T) {
	uc, registry, m := newSagaFixture()

	m.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&domain.CreateOrderResponse{Success: true, OrderID: "order-1"}, nil).Once()
	m.inventory.On("CheckStock", mock.Anything, mock.Anything).
		Return(&domain.CheckStockResponse{
			Success: true,
			Items: []domain.StockStatus{
				{ProductID: "product-1", Available: false, AvailableQuantity: 1},
			},
		}, nil).Once()

	// Compensation cancels the order, but nothing was reserved so no release.
	m.orders.On("CancelOrder", mock.Anything, mock.MatchedBy(func(req *domain.CancelOrderRequest) bool {
		return req.OrderID == "order-1" && req.Reason == "transaction failed"
	})).Return(&domain.CancelOrderResponse{Success: true}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.Anything).
		Return(&domain.NotificationResponse{Success: true}, nil).Once()

	resp, err := uc.Execute(context.Background(), validCommand())

	assert.Nil(t, resp)
	var stepErr *domain.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.KindBusinessRejection, stepErr.Kind)
	assert.Equal(t, ServiceInventory, stepErr.Step)
	assert.Equal(t, 0, registry.Count())

	m.inventory.AssertNotCalled(t, "ReserveItems", mock.Anything, mock.Anything)
	m.inventory.AssertNotCalled(t, "ReleaseItems", mock.Anything, mock.Anything)
	m.payments.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	m.orders.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func TestProcessOrder_Execute_PaymentExhausted(t *testing.T) {
	uc, registry, m := newSagaFixture()

	m.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&domain.CreateOrderResponse{Success: true, OrderID: "order-1"}, nil).Once()
	m.inventory.On("CheckStock", mock.Anything, mock.Anything).
		Return(allStockAvailable(), nil).Once()
	m.inventory.On("ReserveItems", mock.Anything, mock.Anything).
		Return(&domain.ReserveItemsResponse{Success: true}, nil).Once()
	m.payments.On("Process", mock.Anything, mock.Anything).
		Return(nil, &PaymentExhaustedError{Attempts: []PaymentAttempt{
			{Endpoint: "http://localhost:6001", Attempt: 1, Reason: "payment not approved"},
		}}).Once()

	// Full rollback: cancel order, release exactly the reserved items,
	// notify the customer.
	m.orders.On("CancelOrder", mock.Anything, mock.MatchedBy(func(req *domain.CancelOrderRequest) bool {
		return req.Reason == "transaction failed"
	})).Return(&domain.CancelOrderResponse{Success: true}, nil).Once()
	m.inventory.On("ReleaseItems", mock.Anything, mock.MatchedBy(func(req *domain.ReleaseItemsRequest) bool {
		return req.OrderID == "order-1" && len(req.Items) == 1 && req.Items[0].ProductID == "product-1"
	})).Return(&domain.ReleaseItemsResponse{Success: true}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.MatchedBy(func(req *domain.SendFailureNotificationRequest) bool {
		return req.ServiceName == ServicePayment
	})).Return(&domain.NotificationResponse{Success: true}, nil).Once()

	resp, err := uc.Execute(context.Background(), validCommand())

	assert.Nil(t, resp)
	var stepErr *domain.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.KindSagaFailure, stepErr.Kind)
	assert.Contains(t, stepErr.Message, "all payment endpoints failed")
	assert.Equal(t, 0, registry.Count())

	m.orders.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func TestProcessOrder_Execute_NotificationFailureFailsSaga(t *testing.T) {
	uc, registry, m := newSagaFixture()

	m.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&domain.CreateOrderResponse{Success: true, OrderID: "order-1"}, nil).Once()
	m.inventory.On("CheckStock", mock.Anything, mock.Anything).
		Return(allStockAvailable(), nil).Once()
	m.inventory.On("ReserveItems", mock.Anything, mock.Anything).
		Return(&domain.ReserveItemsResponse{Success: true}, nil).Once()
	m.payments.On("Process", mock.Anything, mock.Anything).
		Return(&domain.PaymentOutcome{TransactionID: "TX-1", Endpoint: "http://localhost:6001"}, nil).Once()
	m.notifications.On("SendNotification", mock.Anything, mock.Anything).
		Return(&domain.NotificationResponse{Success: false, Message: "smtp down"}, nil).Once()

	m.orders.On("CancelOrder", mock.Anything, mock.Anything).
		Return(&domain.CancelOrderResponse{Success: true}, nil).Once()
	m.inventory.On("ReleaseItems", mock.Anything, mock.Anything).
		Return(&domain.ReleaseItemsResponse{Success: true}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.Anything).
		Return(&domain.NotificationResponse{Success: true}, nil).Once()

	resp, err := uc.Execute(context.Background(), validCommand())

	assert.Nil(t, resp)
	var stepErr *domain.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, ServiceNotification, stepErr.Step)
	assert.Equal(t, 0, registry.Count())

	m.orders.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func TestProcessOrder_Execute_CompensationContinuesAfterCancelFailure(t *testing.T) {
	uc, registry, m := newSagaFixture()

	m.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&domain.CreateOrderResponse{Success: true, OrderID: "order-1"}, nil).Once()
	m.inventory.On("CheckStock", mock.Anything, mock.Anything).
		Return(allStockAvailable(), nil).Once()
	m.inventory.On("ReserveItems", mock.Anything, mock.Anything).
		Return(&domain.ReserveItemsResponse{Success: true}, nil).Once()
	m.payments.On("Process", mock.Anything, mock.Anything).
		Return(nil, &PaymentExhaustedError{}).Once()

	// Cancel fails; release and notification still run.
	m.orders.On("CancelOrder", mock.Anything, mock.Anything).
		Return(nil, errors.New("order service down")).Once()
	m.inventory.On("ReleaseItems", mock.Anything, mock.Anything).
		Return(&domain.ReleaseItemsResponse{Success: true}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.Anything).
		Return(&domain.NotificationResponse{Success: true}, nil).Once()

	_, err := uc.Execute(context.Background(), validCommand())

	assert.Error(t, err)
	assert.Equal(t, 0, registry.Count())

	m.orders.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}
