package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessPayment_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *ProcessPaymentCommand
		expectedError  string
		expectApproved bool
	}{
		{
			name: "approves card on the 4-prefix network",
			command: &ProcessPaymentCommand{
				CardNumber: "4111111111111111",
				CardHolder: "Jane Roe",
				Expiry:     "12/27",
			},
			expectApproved: true,
		},
		{
			name: "declines card on another network",
			command: &ProcessPaymentCommand{
				CardNumber: "5105105105105100",
				CardHolder: "Jane Roe",
				Expiry:     "12/27",
			},
			expectedError: "card declined",
		},
		{
			name: "rejects incomplete card details",
			command: &ProcessPaymentCommand{
				CardNumber: "4111111111111111",
				CardHolder: "",
				Expiry:     "12/27",
			},
			expectedError: "invalid card details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewProcessPayment("processor-a")

			response, err := uc.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, response)
				return
			}

			assert.NoError(t, err)
			assert.True(t, response.Approved)
			assert.True(t, strings.HasPrefix(response.TransactionID, "TX-"))
		})
	}
}

func TestProcessPayment_Execute_UniqueTransactionIDs(t *testing.T) {
	uc := NewProcessPayment("processor-a")
	cmd := &ProcessPaymentCommand{
		CardNumber: "4000000000000002",
		CardHolder: "Jane Roe",
		Expiry:     "12/27",
	}

	first, err := uc.Execute(context.Background(), cmd)
	assert.NoError(t, err)
	second, err := uc.Execute(context.Background(), cmd)
	assert.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}
