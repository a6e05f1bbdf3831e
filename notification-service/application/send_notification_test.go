package application

import (
	"context"
	"testing"

	"github.com/orderstack/order-system/notification-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of domain.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByRecipientID(ctx context.Context, recipientID string) ([]*domain.Notification, error) {
	args := m.Called(ctx, recipientID)

	var r0 []*domain.Notification
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*domain.Notification)
	}
	return r0, args.Error(1)
}

func TestSendNotification_Execute(t *testing.T) {
	repo := &MockNotificationRepository{}
	repo.On("Save", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == "customer-1" && n.Type == domain.NotificationOrderCompleted
	})).Return(nil).Once()

	uc := NewSendNotification(repo, nil)
	response, err := uc.Execute(context.Background(), &SendNotificationCommand{
		RecipientID: "customer-1",
		Type:        string(domain.NotificationOrderCompleted),
		Message:     "Your order has been processed successfully",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.NotificationID)
	repo.AssertExpectations(t)
}

func TestSendNotification_Execute_Validation(t *testing.T) {
	repo := &MockNotificationRepository{}
	uc := NewSendNotification(repo, nil)

	_, err := uc.Execute(context.Background(), &SendNotificationCommand{
		Message: "no recipient",
	})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), &SendNotificationCommand{
		RecipientID: "customer-1",
	})
	assert.Error(t, err)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSendFailureNotification_Execute(t *testing.T) {
	repo := &MockNotificationRepository{}

	var saved *domain.Notification
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Notification)
		}).Return(nil).Once()

	uc := NewSendFailureNotification(NewSendNotification(repo, nil))
	_, err := uc.Execute(context.Background(), &SendFailureNotificationCommand{
		RecipientID:   "customer-1",
		ErrorMessage:  "Your order could not be processed",
		TransactionID: "tx-1",
		ServiceName:   "payment-gateway",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.NotificationSagaFailure, saved.Type)
	assert.Contains(t, saved.Message, "tx-1")
	assert.Equal(t, "payment-gateway", saved.Metadata["failed_service"])
}

func TestSendFailureNotification_Execute_RequiresRecipient(t *testing.T) {
	repo := &MockNotificationRepository{}
	uc := NewSendFailureNotification(NewSendNotification(repo, nil))

	_, err := uc.Execute(context.Background(), &SendFailureNotificationCommand{
		ErrorMessage: "boom",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
