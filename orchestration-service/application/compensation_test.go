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

func newCompensationFixture() (*CompensationEngine, *sagaMocks) {
	m := &sagaMocks{
		orders:        &mocks.MockOrderClient{},
		inventory:     &mocks.MockInventoryClient{},
		notifications: &mocks.MockNotificationClient{},
		logs:          &mocks.MockLogClient{},
	}
	m.logs.On("LogError", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	engine := NewCompensationEngine(m.orders, m.inventory, m.notifications, m.logs)
	return engine, m
}

func TestCompensationEngine_Compensate_FullRollback(t *testing.T) {
	engine, m := newCompensationFixture()

	tx := domain.NewSagaTransaction("customer-1")
	tx.MarkOrderCreated("order-1")
	tx.MarkInventoryReserved([]models.OrderItem{{ProductID: "product-1", Quantity: 3}})
	tx.MarkPaymentCompleted()

	m.orders.On("CancelOrder", mock.Anything, mock.MatchedBy(func(req *domain.CancelOrderRequest) bool {
		return req.OrderID == "order-1" && req.Reason == "transaction failed"
	})).Return(&domain.CancelOrderResponse{Success: true}, nil).Once()
	m.inventory.On("ReleaseItems", mock.Anything, mock.MatchedBy(func(req *domain.ReleaseItemsRequest) bool {
		return len(req.Items) == 1 && req.Items[0].Quantity == 3
	})).Return(&domain.ReleaseItemsResponse{Success: true}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.MatchedBy(func(req *domain.SendFailureNotificationRequest) bool {
		return req.TransactionID == tx.TransactionID && req.ServiceName == ServicePayment
	})).Return(&domain.NotificationResponse{Success: true}, nil).Once()

	engine.Compensate(context.Background(), tx, ServicePayment)

	assert.Equal(t, domain.SagaStateCompensated, tx.State)
	m.orders.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func TestCompensationEngine_Compensate_NothingRecorded(t *testing.T) {
	engine, m := newCompensationFixture()

	tx := domain.NewSagaTransaction("customer-1")

	m.notifications.On("SendFailureNotification", mock.Anything, mock.Anything).
		Return(&domain.NotificationResponse{Success: true}, nil).Once()

	engine.Compensate(context.Background(), tx, ServiceOrder)

	assert.Equal(t, domain.SagaStateCompensated, tx.State)
	m.orders.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
	m.inventory.AssertNotCalled(t, "ReleaseItems", mock.Anything, mock.Anything)
	m.notifications.AssertExpectations(t)
}

func TestCompensationEngine_Compensate_OrderOnly(t *testing.T) {
	engine, m := newCompensationFixture()

	tx := domain.NewSagaTransaction("customer-1")
	tx.MarkOrderCreated("order-1")

	m.orders.On("CancelOrder", mock.Anything, mock.Anything).
		Return(&domain.CancelOrderResponse{Success: true}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.Anything).
		Return(&domain.NotificationResponse{Success: true}, nil).Once()

	engine.Compensate(context.Background(), tx, ServiceInventory)

	m.inventory.AssertNotCalled(t, "ReleaseItems", mock.Anything, mock.Anything)
	m.orders.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}

func TestCompensationEngine_Compensate_BestEffortOnFailures(t *testing.T) {
	engine, m := newCompensationFixture()

	tx := domain.NewSagaTransaction("customer-1")
	tx.MarkOrderCreated("order-1")
	tx.MarkInventoryReserved([]models.OrderItem{{ProductID: "product-1", Quantity: 1}})

	// Every action fails; the engine still attempts all of them and
	// settles the transaction.
	m.orders.On("CancelOrder", mock.Anything, mock.Anything).
		Return(nil, errors.New("order service down")).Once()
	m.inventory.On("ReleaseItems", mock.Anything, mock.Anything).
		Return(&domain.ReleaseItemsResponse{Success: false, Message: "unknown order"}, nil).Once()
	m.notifications.On("SendFailureNotification", mock.Anything, mock.Anything).
		Return(nil, errors.New("notification service down")).Once()

	engine.Compensate(context.Background(), tx, ServicePayment)

	assert.Equal(t, domain.SagaStateCompensated, tx.State)
	m.orders.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
}
