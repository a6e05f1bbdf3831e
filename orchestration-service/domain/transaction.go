package domain

import (
	"time"

	"github.com/orderstack/order-system/shared/models"
)

// SagaState represents where a transaction is in the order workflow
type SagaState string

const (
	SagaStateStarted           SagaState = "started"
	SagaStateOrderCreated      SagaState = "order_created"
	SagaStateInventoryReserved SagaState = "inventory_reserved"
	SagaStatePaymentCompleted  SagaState = "payment_completed"
	SagaStateCompleted         SagaState = "completed"
	SagaStateCompensating      SagaState = "compensating"
	SagaStateCompensated       SagaState = "compensated"
)

// SagaTransaction tracks the progress of one in-flight order-processing
// request. It is owned by the orchestrator for the duration of the
// request; the registry only holds a reference. Progress flags are
// monotonic: they go false to true and are never reset, the transaction
// is simply removed from the registry at a terminal outcome.
type SagaTransaction struct {
	TransactionID     string
	CustomerID        string
	OrderID           string
	State             SagaState
	OrderCreated      bool
	InventoryReserved bool
	PaymentCompleted  bool
	NotificationSent  bool
	// ReservedItems records exactly which items were reserved so
	// compensation releases precisely those.
	ReservedItems []models.OrderItem
	CreatedAt     time.Time
}

// NewSagaTransaction starts a transaction for a customer request
func NewSagaTransaction(customerID string) *SagaTransaction {
	return &SagaTransaction{
		TransactionID: models.GenerateUUID().String(),
		CustomerID:    customerID,
		State:         SagaStateStarted,
		CreatedAt:     time.Now(),
	}
}

// MarkOrderCreated records successful order creation
func (t *SagaTransaction) MarkOrderCreated(orderID string) {
	t.OrderID = orderID
	t.OrderCreated = true
	t.State = SagaStateOrderCreated
}

// MarkInventoryReserved records the reserved items
func (t *SagaTransaction) MarkInventoryReserved(items []models.OrderItem) {
	t.ReservedItems = items
	t.InventoryReserved = true
	t.State = SagaStateInventoryReserved
}

// MarkPaymentCompleted records a successful payment
func (t *SagaTransaction) MarkPaymentCompleted() {
	t.PaymentCompleted = true
	t.State = SagaStatePaymentCompleted
}

// MarkNotificationSent records the success notification; the saga is complete
func (t *SagaTransaction) MarkNotificationSent() {
	t.NotificationSent = true
	t.State = SagaStateCompleted
}

// BeginCompensation moves the transaction into rollback
func (t *SagaTransaction) BeginCompensation() {
	t.State = SagaStateCompensating
}

// MarkCompensated marks the terminal failure state
func (t *SagaTransaction) MarkCompensated() {
	t.State = SagaStateCompensated
}

// CardDetails carries the card fields forwarded to payment endpoints
type CardDetails struct {
	Number     string `json:"number"`
	Holder     string `json:"holder"`
	Expiration string `json:"expiration"`
}

// PaymentOutcome is the result of a payment attempt that succeeded
type PaymentOutcome struct {
	TransactionID string
	Endpoint      string
}
