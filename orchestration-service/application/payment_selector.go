package application

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// PaymentAttempt records one failed call against one endpoint
type PaymentAttempt struct {
	Endpoint string `json:"endpoint"`
	Attempt  int    `json:"attempt"`
	Reason   string `json:"reason"`
}

// PaymentExhaustedError is returned after every endpoint has used up its
// attempt budget. Its message aggregates the full attempt log so the
// caller can see what was tried where.
type PaymentExhaustedError struct {
	Attempts []PaymentAttempt
}

func (e *PaymentExhaustedError) Error() string {
	var sb strings.Builder
	sb.WriteString("all payment endpoints failed")
	for _, a := range e.Attempts {
		sb.WriteString(fmt.Sprintf("; %s attempt %d: %s", a.Endpoint, a.Attempt, a.Reason))
	}
	return sb.String()
}

// PaymentProcessor is the contract the orchestrator needs from the
// payment step.
type PaymentProcessor interface {
	Process(ctx context.Context, req *domain.ProcessPaymentRequest) (*domain.PaymentOutcome, error)
}

// PaymentGatewaySelector rotates across N interchangeable payment
// endpoints, attempting each up to attemptsPerEndpoint times with a
// fixed delay between attempts. The rotation cursor is shared across
// concurrent requests and advanced atomically so consecutive sagas
// spread load across endpoints.
type PaymentGatewaySelector struct {
	client              domain.PaymentEndpointClient
	logs                domain.LogClient
	endpoints           []string
	attemptsPerEndpoint int
	retryDelay          time.Duration

	cursor atomic.Uint64
}

// NewPaymentGatewaySelector creates a selector over the configured endpoints
func NewPaymentGatewaySelector(
	client domain.PaymentEndpointClient,
	logs domain.LogClient,
	endpoints []string,
	attemptsPerEndpoint int,
	retryDelay time.Duration,
) *PaymentGatewaySelector {
	if attemptsPerEndpoint <= 0 {
		attemptsPerEndpoint = 1
	}
	return &PaymentGatewaySelector{
		client:              client,
		logs:                logs,
		endpoints:           endpoints,
		attemptsPerEndpoint: attemptsPerEndpoint,
		retryDelay:          retryDelay,
	}
}

// Process attempts the payment until one endpoint reports success or all
// N endpoints exhaust their M-attempt budget. Transport errors and
// business rejections both consume attempts. The first success
// short-circuits the whole loop.
func (s *PaymentGatewaySelector) Process(ctx context.Context, req *domain.ProcessPaymentRequest) (*domain.PaymentOutcome, error) {
	ctx, span := telemetry.StartSpan(ctx, "payment.process")
	defer span.End()

	if len(s.endpoints) == 0 {
		return nil, &PaymentExhaustedError{}
	}

	var attempts []PaymentAttempt

	for round := 0; round < len(s.endpoints); round++ {
		// Advance the shared cursor before each endpoint round so
		// concurrent sagas start from different endpoints.
		idx := int(s.cursor.Add(1) % uint64(len(s.endpoints)))
		endpoint := s.endpoints[idx]

		for attempt := 1; attempt <= s.attemptsPerEndpoint; attempt++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			resp, err := s.client.ProcessPayment(ctx, endpoint, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				attempts = s.recordFailure(ctx, attempts, endpoint, attempt, fmt.Sprintf("endpoint unreachable: %v", err))
			} else if resp.Success {
				telemetry.RecordCounter(ctx, "payment_attempts_total", "Payment attempts", 1,
					attribute.String("endpoint", endpoint),
					attribute.String("result", "success"),
				)
				return &domain.PaymentOutcome{
					TransactionID: resp.TransactionID,
					Endpoint:      endpoint,
				}, nil
			} else {
				attempts = s.recordFailure(ctx, attempts, endpoint, attempt, "payment not approved")
			}

			if err := s.wait(ctx); err != nil {
				return nil, err
			}
		}
	}

	return nil, &PaymentExhaustedError{Attempts: attempts}
}

func (s *PaymentGatewaySelector) recordFailure(ctx context.Context, attempts []PaymentAttempt, endpoint string, attempt int, reason string) []PaymentAttempt {
	telemetry.RecordCounter(ctx, "payment_attempts_total", "Payment attempts", 1,
		attribute.String("endpoint", endpoint),
		attribute.String("result", "failure"),
	)

	if s.logs != nil {
		// Best-effort: a logging failure never affects the payment outcome.
		_ = s.logs.LogError(ctx, "payment-gateway -> "+endpoint, reason)
	}

	return append(attempts, PaymentAttempt{
		Endpoint: endpoint,
		Attempt:  attempt,
		Reason:   reason,
	})
}

// wait pauses between attempts without holding a worker hostage; the
// caller's cancellation aborts the wait.
func (s *PaymentGatewaySelector) wait(ctx context.Context) error {
	if s.retryDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.retryDelay):
		return nil
	}
}
