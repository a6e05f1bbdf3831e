package application

import (
	"context"
	"testing"

	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPay_Execute_Success(t *testing.T) {
	payments := &MockPaymentProcessor{}
	payments.On("Process", mock.Anything, mock.MatchedBy(func(req *domain.ProcessPaymentRequest) bool {
		return req.CardNumber == "4111111111111111"
	})).Return(&domain.PaymentOutcome{TransactionID: "TX-5", Endpoint: "http://a"}, nil).Once()

	uc := NewPay(payments)
	response, err := uc.Execute(context.Background(), &PayCommand{
		Card: domain.CardDetails{Number: "4111111111111111", Holder: "Jane Roe", Expiration: "12/27"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "TX-5", response.TransactionID)
	assert.Equal(t, "http://a", response.Endpoint)
	payments.AssertExpectations(t)
}

func TestPay_Execute_IncompleteCard(t *testing.T) {
	payments := &MockPaymentProcessor{}
	uc := NewPay(payments)

	_, err := uc.Execute(context.Background(), &PayCommand{
		Card: domain.CardDetails{Number: "4111111111111111"},
	})

	var stepErr *domain.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.KindValidation, stepErr.Kind)
	payments.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPay_Execute_Exhausted(t *testing.T) {
	payments := &MockPaymentProcessor{}
	payments.On("Process", mock.Anything, mock.Anything).
		Return(nil, &PaymentExhaustedError{Attempts: []PaymentAttempt{
			{Endpoint: "http://a", Attempt: 1, Reason: "payment not approved"},
		}}).Once()

	uc := NewPay(payments)
	response, err := uc.Execute(context.Background(), &PayCommand{
		Card: domain.CardDetails{Number: "5105105105105100", Holder: "Jane Roe", Expiration: "12/27"},
	})

	assert.Nil(t, response)
	var exhausted *PaymentExhaustedError
	assert.ErrorAs(t, err, &exhausted)
}
