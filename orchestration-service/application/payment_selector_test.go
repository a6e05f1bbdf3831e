package application

import (
	"context"
	"testing"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/orchestration-service/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func paymentRequest() *domain.ProcessPaymentRequest {
	return &domain.ProcessPaymentRequest{
		CardNumber: "4111111111111111",
		CardHolder: "Jane Roe",
		Expiry:     "12/27",
	}
}

func TestPaymentGatewaySelector_Process_FirstEndpointSucceeds(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a", "http://b"}, 2, 0)

	// With two endpoints a fresh selector starts its rotation at the
	// second one.
	client.On("ProcessPayment", mock.Anything, "http://b", mock.Anything).
		Return(&domain.ProcessPaymentResponse{Success: true, TransactionID: "TX-9"}, nil).Once()

	outcome, err := selector.Process(context.Background(), paymentRequest())

	assert.NoError(t, err)
	assert.Equal(t, "TX-9", outcome.TransactionID)
	assert.Equal(t, "http://b", outcome.Endpoint)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "ProcessPayment", 1)
}

func TestPaymentGatewaySelector_Process_RetriesSameEndpointThenSucceeds(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a", "http://b"}, 2, 0)

	// First attempt against the starting endpoint fails; the second
	// attempt of the same budget succeeds before any failover.
	client.On("ProcessPayment", mock.Anything, "http://b", mock.Anything).
		Return(nil, errors.New("connection refused")).Once()
	client.On("ProcessPayment", mock.Anything, "http://b", mock.Anything).
		Return(&domain.ProcessPaymentResponse{Success: true, TransactionID: "TX-11"}, nil).Once()

	outcome, err := selector.Process(context.Background(), paymentRequest())

	assert.NoError(t, err)
	assert.Equal(t, "TX-11", outcome.TransactionID)
	assert.Equal(t, "http://b", outcome.Endpoint)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "ProcessPayment", 2)
	client.AssertNotCalled(t, "ProcessPayment", mock.Anything, "http://a", mock.Anything)
}

func TestPaymentGatewaySelector_Process_FailsOverToNextEndpoint(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a", "http://b"}, 2, 0)

	client.On("ProcessPayment", mock.Anything, "http://b", mock.Anything).
		Return(nil, errors.New("connection refused")).Twice()
	client.On("ProcessPayment", mock.Anything, "http://a", mock.Anything).
		Return(&domain.ProcessPaymentResponse{Success: true, TransactionID: "TX-10"}, nil).Once()

	outcome, err := selector.Process(context.Background(), paymentRequest())

	assert.NoError(t, err)
	assert.Equal(t, "http://a", outcome.Endpoint)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "ProcessPayment", 3)
}

func TestPaymentGatewaySelector_Process_ExhaustsAllEndpoints(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a", "http://b"}, 2, 0)

	client.On("ProcessPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.ProcessPaymentResponse{Success: false}, nil)

	outcome, err := selector.Process(context.Background(), paymentRequest())

	assert.Nil(t, outcome)
	var exhausted *PaymentExhaustedError
	assert.ErrorAs(t, err, &exhausted)
	// 2 endpoints x 2 attempts, never more.
	assert.Len(t, exhausted.Attempts, 4)
	assert.Contains(t, err.Error(), "all payment endpoints failed")
	assert.Contains(t, err.Error(), "payment not approved")
	client.AssertNumberOfCalls(t, "ProcessPayment", 4)
}

func TestPaymentGatewaySelector_Process_MixedFailureReasons(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a", "http://b"}, 1, 0)

	client.On("ProcessPayment", mock.Anything, "http://b", mock.Anything).
		Return(nil, errors.New("connection refused")).Once()
	client.On("ProcessPayment", mock.Anything, "http://a", mock.Anything).
		Return(&domain.ProcessPaymentResponse{Success: false}, nil).Once()

	_, err := selector.Process(context.Background(), paymentRequest())

	var exhausted *PaymentExhaustedError
	assert.ErrorAs(t, err, &exhausted)
	assert.Len(t, exhausted.Attempts, 2)
	assert.Contains(t, exhausted.Attempts[0].Reason, "endpoint unreachable")
	assert.Equal(t, "payment not approved", exhausted.Attempts[1].Reason)
}

func TestPaymentGatewaySelector_Process_RotatesBetweenRequests(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a", "http://b"}, 1, 0)

	var order []string
	client.On("ProcessPayment", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order = append(order, args.String(1))
		}).
		Return(&domain.ProcessPaymentResponse{Success: true, TransactionID: "TX-1"}, nil)

	_, err := selector.Process(context.Background(), paymentRequest())
	assert.NoError(t, err)
	_, err = selector.Process(context.Background(), paymentRequest())
	assert.NoError(t, err)

	// Consecutive requests start from consecutive endpoints.
	assert.Equal(t, []string{"http://b", "http://a"}, order)
}

func TestPaymentGatewaySelector_Process_ContextCancelled(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, []string{"http://a"}, 2, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := selector.Process(ctx, paymentRequest())

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentGatewaySelector_Process_NoEndpoints(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	selector := NewPaymentGatewaySelector(client, nil, nil, 2, 0)

	outcome, err := selector.Process(context.Background(), paymentRequest())

	assert.Nil(t, outcome)
	var exhausted *PaymentExhaustedError
	assert.ErrorAs(t, err, &exhausted)
}

func TestPaymentGatewaySelector_Process_LogsFailures(t *testing.T) {
	client := &mocks.MockPaymentEndpointClient{}
	logs := &mocks.MockLogClient{}
	selector := NewPaymentGatewaySelector(client, logs, []string{"http://a"}, 1, 0)

	client.On("ProcessPayment", mock.Anything, "http://a", mock.Anything).
		Return(&domain.ProcessPaymentResponse{Success: false}, nil).Once()
	logs.On("LogError", mock.Anything, "payment-gateway -> http://a", "payment not approved").
		Return(nil).Once()

	_, err := selector.Process(context.Background(), paymentRequest())

	assert.Error(t, err)
	logs.AssertExpectations(t)
}
