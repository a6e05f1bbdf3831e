package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderstack/order-system/inventory-service/application"
)

// InventoryHandlers contains inventory HTTP handlers
type InventoryHandlers struct {
	checkStock   *application.CheckStock
	reserveItems *application.ReserveItems
	releaseItems *application.ReleaseItems
}

// NewInventoryHandlers creates new inventory handlers
func NewInventoryHandlers(
	checkStock *application.CheckStock,
	reserveItems *application.ReserveItems,
	releaseItems *application.ReleaseItems,
) *InventoryHandlers {
	return &InventoryHandlers{
		checkStock:   checkStock,
		reserveItems: reserveItems,
		releaseItems: releaseItems,
	}
}

type checkStockResponse struct {
	Success bool                      `json:"success"`
	Items   []application.StockStatus `json:"items,omitempty"`
	Message string                    `json:"message"`
}

type reservationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CheckStock handles stock availability queries
func (h *InventoryHandlers) CheckStock(w http.ResponseWriter, r *http.Request) {
	var query application.CheckStockQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeJSON(w, http.StatusBadRequest, checkStockResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	response, err := h.checkStock.Execute(r.Context(), &query)
	if err != nil {
		writeJSON(w, http.StatusOK, checkStockResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, checkStockResponse{
		Success: true,
		Items:   response.Items,
		Message: "stock checked",
	})
}

// ReserveItems handles stock reservation requests
func (h *InventoryHandlers) ReserveItems(w http.ResponseWriter, r *http.Request) {
	var cmd application.ReserveItemsCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, reservationResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if _, err := h.reserveItems.Execute(r.Context(), &cmd); err != nil {
		writeJSON(w, http.StatusOK, reservationResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, reservationResponse{
		Success: true,
		Message: "items reserved",
	})
}

// ReleaseItems handles stock release requests
func (h *InventoryHandlers) ReleaseItems(w http.ResponseWriter, r *http.Request) {
	var cmd application.ReleaseItemsCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, reservationResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if _, err := h.releaseItems.Execute(r.Context(), &cmd); err != nil {
		writeJSON(w, http.StatusOK, reservationResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, reservationResponse{
		Success: true,
		Message: "items released",
	})
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/stock", func(r chi.Router) {
		r.Post("/check", h.CheckStock)
		r.Post("/reserve", h.ReserveItems)
		r.Post("/release", h.ReleaseItems)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
