// Package mocks provides hand-maintained test doubles for the
// collaborator client interfaces. Keep them in sync with
// orchestration-service/domain/collaborators.go.
package mocks

import (
	"context"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/stretchr/testify/mock"
)

// MockOrderClient is a mock implementation of domain.OrderClient
type MockOrderClient struct {
	mock.Mock
}

func (m *MockOrderClient) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.CreateOrderResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.CreateOrderResponse)
	}
	return r0, args.Error(1)
}

func (m *MockOrderClient) CancelOrder(ctx context.Context, req *domain.CancelOrderRequest) (*domain.CancelOrderResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.CancelOrderResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.CancelOrderResponse)
	}
	return r0, args.Error(1)
}

// MockInventoryClient is a mock implementation of domain.InventoryClient
type MockInventoryClient struct {
	mock.Mock
}

func (m *MockInventoryClient) CheckStock(ctx context.Context, req *domain.CheckStockRequest) (*domain.CheckStockResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.CheckStockResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.CheckStockResponse)
	}
	return r0, args.Error(1)
}

func (m *MockInventoryClient) ReserveItems(ctx context.Context, req *domain.ReserveItemsRequest) (*domain.ReserveItemsResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.ReserveItemsResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.ReserveItemsResponse)
	}
	return r0, args.Error(1)
}

func (m *MockInventoryClient) ReleaseItems(ctx context.Context, req *domain.ReleaseItemsRequest) (*domain.ReleaseItemsResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.ReleaseItemsResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.ReleaseItemsResponse)
	}
	return r0, args.Error(1)
}

// MockNotificationClient is a mock implementation of domain.NotificationClient
type MockNotificationClient struct {
	mock.Mock
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, req *domain.SendNotificationRequest) (*domain.NotificationResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.NotificationResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.NotificationResponse)
	}
	return r0, args.Error(1)
}

func (m *MockNotificationClient) SendFailureNotification(ctx context.Context, req *domain.SendFailureNotificationRequest) (*domain.NotificationResponse, error) {
	args := m.Called(ctx, req)

	var r0 *domain.NotificationResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.NotificationResponse)
	}
	return r0, args.Error(1)
}

// MockPaymentEndpointClient is a mock implementation of domain.PaymentEndpointClient
type MockPaymentEndpointClient struct {
	mock.Mock
}

func (m *MockPaymentEndpointClient) ProcessPayment(ctx context.Context, endpoint string, req *domain.ProcessPaymentRequest) (*domain.ProcessPaymentResponse, error) {
	args := m.Called(ctx, endpoint, req)

	var r0 *domain.ProcessPaymentResponse
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.ProcessPaymentResponse)
	}
	return r0, args.Error(1)
}

// MockLogClient is a mock implementation of domain.LogClient
type MockLogClient struct {
	mock.Mock
}

func (m *MockLogClient) LogError(ctx context.Context, source, message string) error {
	args := m.Called(ctx, source, message)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	callArgs := make([]interface{}, 0, len(evts)+1)
	callArgs = append(callArgs, ctx)
	for _, e := range evts {
		callArgs = append(callArgs, e)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}
