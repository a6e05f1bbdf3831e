package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderstack/order-system/processor-service/application"
)

// ProcessorHandlers contains card processor HTTP handlers
type ProcessorHandlers struct {
	processPayment *application.ProcessPayment
}

// NewProcessorHandlers creates new processor handlers
func NewProcessorHandlers(processPayment *application.ProcessPayment) *ProcessorHandlers {
	return &ProcessorHandlers{
		processPayment: processPayment,
	}
}

// processPaymentResponse is the wire response. Success is the explicit
// authorization outcome, callers never infer it from the HTTP status.
type processPaymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ProcessPayment handles card authorization requests
func (h *ProcessorHandlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.ProcessPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, processPaymentResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	response, err := h.processPayment.Execute(r.Context(), &cmd)
	if err != nil {
		writeJSON(w, http.StatusOK, processPaymentResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, processPaymentResponse{
		Success:       true,
		TransactionID: response.TransactionID,
	})
}

// RegisterRoutes registers processor routes
func (h *ProcessorHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/payments", h.ProcessPayment)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
