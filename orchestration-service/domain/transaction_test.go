package domain

import (
	"testing"

	"github.com/orderstack/order-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestSagaTransaction_ProgressFlags(t *testing.T) {
	tx := NewSagaTransaction("customer-1")

	assert.NotEmpty(t, tx.TransactionID)
	assert.Equal(t, SagaStateStarted, tx.State)
	assert.False(t, tx.OrderCreated)
	assert.False(t, tx.InventoryReserved)
	assert.False(t, tx.PaymentCompleted)
	assert.False(t, tx.NotificationSent)

	tx.MarkOrderCreated("order-1")
	assert.Equal(t, "order-1", tx.OrderID)
	assert.True(t, tx.OrderCreated)
	assert.Equal(t, SagaStateOrderCreated, tx.State)

	items := []models.OrderItem{{ProductID: "product-1", Quantity: 2}}
	tx.MarkInventoryReserved(items)
	assert.True(t, tx.InventoryReserved)
	assert.Equal(t, items, tx.ReservedItems)
	assert.Equal(t, SagaStateInventoryReserved, tx.State)

	tx.MarkPaymentCompleted()
	assert.True(t, tx.PaymentCompleted)
	assert.Equal(t, SagaStatePaymentCompleted, tx.State)

	tx.MarkNotificationSent()
	assert.True(t, tx.NotificationSent)
	assert.Equal(t, SagaStateCompleted, tx.State)
}

func TestSagaTransaction_CompensationKeepsProgressFlags(t *testing.T) {
	tx := NewSagaTransaction("customer-1")
	tx.MarkOrderCreated("order-1")
	tx.MarkInventoryReserved([]models.OrderItem{{ProductID: "product-1", Quantity: 1}})

	tx.BeginCompensation()
	assert.Equal(t, SagaStateCompensating, tx.State)
	// Flags stay set so compensation can read the recorded progress.
	assert.True(t, tx.OrderCreated)
	assert.True(t, tx.InventoryReserved)

	tx.MarkCompensated()
	assert.Equal(t, SagaStateCompensated, tx.State)
}

func TestStepError_MessageAndUnwrap(t *testing.T) {
	cause := assert.AnError
	err := NewStepError("payment-gateway", KindSagaFailure, "all payment endpoints failed", cause)

	assert.Contains(t, err.Error(), "payment-gateway")
	assert.Contains(t, err.Error(), "saga_failure")
	assert.ErrorIs(t, err, cause)
}
