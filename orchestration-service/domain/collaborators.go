package domain

import (
	"context"

	"github.com/orderstack/order-system/shared/models"
)

// Request/response shapes for the collaborator services. Success is
// always an explicit boolean plus message in the body, never inferred
// from the transport status alone.

type CreateOrderRequest struct {
	CustomerID  string             `json:"customer_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message"`
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type CancelOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CheckStockRequest struct {
	Items []models.OrderItem `json:"items"`
}

type StockStatus struct {
	ProductID         string `json:"product_id"`
	Available         bool   `json:"available"`
	AvailableQuantity int    `json:"available_quantity"`
}

type CheckStockResponse struct {
	Success bool          `json:"success"`
	Items   []StockStatus `json:"items,omitempty"`
	Message string        `json:"message"`
}

type ReserveItemsRequest struct {
	OrderID string             `json:"order_id"`
	Items   []models.OrderItem `json:"items"`
}

type ReserveItemsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ReleaseItemsRequest struct {
	OrderID string             `json:"order_id"`
	Items   []models.OrderItem `json:"items"`
}

type ReleaseItemsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProcessPaymentRequest struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"`
}

type ProcessPaymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type SendNotificationRequest struct {
	RecipientID string            `json:"recipient_id"`
	Type        string            `json:"type"`
	Message     string            `json:"message"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type SendFailureNotificationRequest struct {
	RecipientID   string `json:"recipient_id"`
	ErrorMessage  string `json:"error_message"`
	TransactionID string `json:"transaction_id"`
	ServiceName   string `json:"service_name"`
}

type NotificationResponse struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notification_id,omitempty"`
	Message        string `json:"message"`
}

// OrderClient wraps the order collaborator's remote operations
type OrderClient interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	CancelOrder(ctx context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error)
}

// InventoryClient wraps the inventory collaborator's remote operations
type InventoryClient interface {
	CheckStock(ctx context.Context, req *CheckStockRequest) (*CheckStockResponse, error)
	ReserveItems(ctx context.Context, req *ReserveItemsRequest) (*ReserveItemsResponse, error)
	ReleaseItems(ctx context.Context, req *ReleaseItemsRequest) (*ReleaseItemsResponse, error)
}

// NotificationClient wraps the notification collaborator's remote operations
type NotificationClient interface {
	SendNotification(ctx context.Context, req *SendNotificationRequest) (*NotificationResponse, error)
	SendFailureNotification(ctx context.Context, req *SendFailureNotificationRequest) (*NotificationResponse, error)
}

// PaymentEndpointClient sends a payment request to one of the
// interchangeable processing endpoints.
type PaymentEndpointClient interface {
	ProcessPayment(ctx context.Context, endpoint string, req *ProcessPaymentRequest) (*ProcessPaymentResponse, error)
}

// LogClient forwards diagnostics to the centralized logging collaborator.
// Logging is best-effort: failures are swallowed by callers and never
// affect the saga outcome.
type LogClient interface {
	LogError(ctx context.Context, source, message string) error
}
