package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/orderstack/order-system/logging-service/application"
)

// LogHandlers contains logging HTTP handlers
type LogHandlers struct {
	recordError *application.RecordError
	listRecent  *application.ListRecent
}

// NewLogHandlers creates new logging handlers
func NewLogHandlers(
	recordError *application.RecordError,
	listRecent *application.ListRecent,
) *LogHandlers {
	return &LogHandlers{
		recordError: recordError,
		listRecent:  listRecent,
	}
}

type recordErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RecordError handles error report submissions
func (h *LogHandlers) RecordError(w http.ResponseWriter, r *http.Request) {
	var cmd application.RecordErrorCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, recordErrorResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if _, err := h.recordError.Execute(r.Context(), &cmd); err != nil {
		writeJSON(w, http.StatusOK, recordErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, recordErrorResponse{Success: true})
}

// ListRecent handles queries for recent error reports
func (h *LogHandlers) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	response, err := h.listRecent.Execute(r.Context(), &application.ListRecentQuery{Limit: limit})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers logging routes
func (h *LogHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/logs", func(r chi.Router) {
		r.Post("/error", h.RecordError)
		r.Get("/recent", h.ListRecent)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
