package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderstack/order-system/orchestration-service/application"
	"github.com/orderstack/order-system/orchestration-service/domain"
)

// OrchestrationHandlers contains the front-door HTTP handlers
type OrchestrationHandlers struct {
	processOrder *application.ProcessOrder
	pay          *application.Pay
}

// NewOrchestrationHandlers creates new orchestration handlers
func NewOrchestrationHandlers(
	processOrder *application.ProcessOrder,
	pay *application.Pay,
) *OrchestrationHandlers {
	return &OrchestrationHandlers{
		processOrder: processOrder,
		pay:          pay,
	}
}

type processOrderResult struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
	OrderID       string `json:"order_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ProcessOrder handles end-to-end order processing requests
func (h *OrchestrationHandlers) ProcessOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.ProcessOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, &processOrderResult{
			Message: "Invalid request body",
			Error:   "malformed JSON",
		})
		return
	}

	response, err := h.processOrder.Execute(r.Context(), &cmd)
	if err != nil {
		status, message := statusFor(err)
		writeJSON(w, status, &processOrderResult{
			Message: "Order processing failed",
			Error:   message,
		})
		return
	}

	writeJSON(w, http.StatusOK, &processOrderResult{
		Message:       "Order processed successfully",
		TransactionID: response.TransactionID,
		OrderID:       response.OrderID,
	})
}

type payResult struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Pay handles single-step card payment requests
func (h *OrchestrationHandlers) Pay(w http.ResponseWriter, r *http.Request) {
	var cmd application.PayCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, &payResult{
			Message: "Invalid request body",
			Error:   "malformed JSON",
		})
		return
	}

	response, err := h.pay.Execute(r.Context(), &cmd)
	if err != nil {
		status, message := statusFor(err)
		header := "All payment services failed"
		if status == http.StatusBadRequest {
			header = "Invalid payment request"
		}
		writeJSON(w, status, &payResult{
			Message: header,
			Error:   message,
		})
		return
	}

	writeJSON(w, http.StatusOK, &payResult{
		Message:       "Payment successful",
		TransactionID: response.TransactionID,
	})
}

// RegisterRoutes registers orchestration routes
func (h *OrchestrationHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/orders/process", h.ProcessOrder)
	r.Post("/payments/pay", h.Pay)
}

// statusFor maps a saga error to an HTTP status and a caller-safe
// message. Validation errors become 400; everything else is a 500 with
// the step's diagnostic, never raw downstream error text.
func statusFor(err error) (int, string) {
	if stepErr, ok := err.(*domain.StepError); ok {
		if stepErr.Kind == domain.KindValidation {
			return http.StatusBadRequest, stepErr.Message
		}
		return http.StatusInternalServerError, stepErr.Message
	}

	if exhausted, ok := err.(*application.PaymentExhaustedError); ok {
		return http.StatusInternalServerError, exhausted.Error()
	}

	return http.StatusInternalServerError, "internal error"
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
