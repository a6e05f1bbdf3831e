package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/pkg/errors"
)

// Collaborator clients are thin request/response wrappers: they carry no
// business logic and surface success strictly from the response body.

const defaultClientTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultClientTimeout}
}

// postJSON sends a JSON body and decodes a JSON response. Non-2xx
// statuses with a decodable body are still decoded: collaborators report
// failure through the body's success flag.
func postJSON(ctx context.Context, client *http.Client, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", url)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "malformed response from %s", url)
	}

	return nil
}

// HTTPOrderClient calls the order collaborator
type HTTPOrderClient struct {
	client  *http.Client
	baseURL string
}

var _ domain.OrderClient = (*HTTPOrderClient)(nil)

// NewHTTPOrderClient creates an order client for the given base URL
func NewHTTPOrderClient(baseURL string) *HTTPOrderClient {
	return &HTTPOrderClient{
		client:  newHTTPClient(),
		baseURL: baseURL,
	}
}

func (c *HTTPOrderClient) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	var resp domain.CreateOrderResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPOrderClient) CancelOrder(ctx context.Context, req *domain.CancelOrderRequest) (*domain.CancelOrderResponse, error) {
	var resp domain.CancelOrderResponse
	url := fmt.Sprintf("%s/orders/%s/cancel", c.baseURL, req.OrderID)
	if err := postJSON(ctx, c.client, url, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HTTPInventoryClient calls the inventory collaborator
type HTTPInventoryClient struct {
	client  *http.Client
	baseURL string
}

var _ domain.InventoryClient = (*HTTPInventoryClient)(nil)

// NewHTTPInventoryClient creates an inventory client for the given base URL
func NewHTTPInventoryClient(baseURL string) *HTTPInventoryClient {
	return &HTTPInventoryClient{
		client:  newHTTPClient(),
		baseURL: baseURL,
	}
}

func (c *HTTPInventoryClient) CheckStock(ctx context.Context, req *domain.CheckStockRequest) (*domain.CheckStockResponse, error) {
	var resp domain.CheckStockResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/stock/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPInventoryClient) ReserveItems(ctx context.Context, req *domain.ReserveItemsRequest) (*domain.ReserveItemsResponse, error) {
	var resp domain.ReserveItemsResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/stock/reserve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPInventoryClient) ReleaseItems(ctx context.Context, req *domain.ReleaseItemsRequest) (*domain.ReleaseItemsResponse, error) {
	var resp domain.ReleaseItemsResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/stock/release", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HTTPNotificationClient calls the notification collaborator
type HTTPNotificationClient struct {
	client  *http.Client
	baseURL string
}

var _ domain.NotificationClient = (*HTTPNotificationClient)(nil)

// NewHTTPNotificationClient creates a notification client for the given base URL
func NewHTTPNotificationClient(baseURL string) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		client:  newHTTPClient(),
		baseURL: baseURL,
	}
}

func (c *HTTPNotificationClient) SendNotification(ctx context.Context, req *domain.SendNotificationRequest) (*domain.NotificationResponse, error) {
	var resp domain.NotificationResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/notifications", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPNotificationClient) SendFailureNotification(ctx context.Context, req *domain.SendFailureNotificationRequest) (*domain.NotificationResponse, error) {
	var resp domain.NotificationResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/notifications/failure", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HTTPPaymentEndpointClient posts card payments to whichever processor
// endpoint the selector picked.
type HTTPPaymentEndpointClient struct {
	client *http.Client
}

var _ domain.PaymentEndpointClient = (*HTTPPaymentEndpointClient)(nil)

// NewHTTPPaymentEndpointClient creates a payment endpoint client
func NewHTTPPaymentEndpointClient() *HTTPPaymentEndpointClient {
	return &HTTPPaymentEndpointClient{client: newHTTPClient()}
}

func (c *HTTPPaymentEndpointClient) ProcessPayment(ctx context.Context, endpoint string, req *domain.ProcessPaymentRequest) (*domain.ProcessPaymentResponse, error) {
	var resp domain.ProcessPaymentResponse
	if err := postJSON(ctx, c.client, endpoint+"/payments", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type logErrorRequest struct {
	Source    string `json:"source"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type logErrorResponse struct {
	Success bool `json:"success"`
}

// HTTPLogClient forwards diagnostics to the centralized logging collaborator
type HTTPLogClient struct {
	client  *http.Client
	baseURL string
}

var _ domain.LogClient = (*HTTPLogClient)(nil)

// NewHTTPLogClient creates a logging client for the given base URL
func NewHTTPLogClient(baseURL string) *HTTPLogClient {
	return &HTTPLogClient{
		client:  newHTTPClient(),
		baseURL: baseURL,
	}
}

func (c *HTTPLogClient) LogError(ctx context.Context, source, message string) error {
	req := &logErrorRequest{
		Source:    source,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	var resp logErrorResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/logs/error", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New("log entry rejected")
	}
	return nil
}
