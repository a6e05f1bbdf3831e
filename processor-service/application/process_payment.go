package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/orderstack/order-system/processor-service/domain"
	"github.com/pkg/errors"
)

// ProcessPaymentCommand represents a card authorization request
type ProcessPaymentCommand struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"`
}

// ProcessPaymentResponse reports the authorization outcome
type ProcessPaymentResponse struct {
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// ErrCardDeclined is returned when the issuer rejects the card
var ErrCardDeclined = errors.New("card declined")

// ProcessPayment use case
type ProcessPayment struct {
	processorName string
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(processorName string) *ProcessPayment {
	return &ProcessPayment{
		processorName: processorName,
	}
}

// Execute authorizes a card payment. Approved payments get a
// processor-scoped transaction reference.
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) (*ProcessPaymentResponse, error) {
	card, err := domain.NewCard(cmd.CardNumber, cmd.CardHolder, cmd.Expiry)
	if err != nil {
		return nil, errors.Wrap(err, "invalid card details")
	}

	if !card.Approved() {
		log.Printf("[%s] Declined card for %s", uc.processorName, cmd.CardHolder)
		return nil, ErrCardDeclined
	}

	transactionID := fmt.Sprintf("TX-%d", time.Now().UnixNano())
	log.Printf("[%s] Approved payment %s for %s", uc.processorName, transactionID, cmd.CardHolder)

	return &ProcessPaymentResponse{
		Approved:      true,
		TransactionID: transactionID,
	}, nil
}
