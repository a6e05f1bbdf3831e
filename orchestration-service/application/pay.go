package application

import (
	"context"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/pkg/errors"
)

// PayCommand is the single-step payment request: card details alone,
// no order workflow.
type PayCommand struct {
	Card domain.CardDetails `json:"card"`
}

// PayResponse identifies the successful payment
type PayResponse struct {
	TransactionID string `json:"transaction_id"`
	Endpoint      string `json:"endpoint"`
}

// Pay runs the payment endpoint failover on its own, mirroring the
// standalone gateway surface.
type Pay struct {
	payments PaymentProcessor
}

// NewPay creates the single-step payment use case
func NewPay(payments PaymentProcessor) *Pay {
	return &Pay{payments: payments}
}

// Execute attempts the payment across all configured endpoints
func (uc *Pay) Execute(ctx context.Context, cmd *PayCommand) (*PayResponse, error) {
	if cmd.Card.Number == "" || cmd.Card.Holder == "" || cmd.Card.Expiration == "" {
		return nil, domain.NewStepError("validation", domain.KindValidation,
			"card number, holder and expiration are required",
			errors.New("incomplete card details"))
	}

	outcome, err := uc.payments.Process(ctx, &domain.ProcessPaymentRequest{
		CardNumber: cmd.Card.Number,
		CardHolder: cmd.Card.Holder,
		Expiry:     cmd.Card.Expiration,
	})
	if err != nil {
		return nil, err
	}

	return &PayResponse{
		TransactionID: outcome.TransactionID,
		Endpoint:      outcome.Endpoint,
	}, nil
}
