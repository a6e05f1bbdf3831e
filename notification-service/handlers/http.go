package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderstack/order-system/notification-service/application"
)

// NotificationHandlers contains notification HTTP handlers
type NotificationHandlers struct {
	sendNotification        *application.SendNotification
	sendFailureNotification *application.SendFailureNotification
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(
	sendNotification *application.SendNotification,
	sendFailureNotification *application.SendFailureNotification,
) *NotificationHandlers {
	return &NotificationHandlers{
		sendNotification:        sendNotification,
		sendFailureNotification: sendFailureNotification,
	}
}

type notificationResponse struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notification_id,omitempty"`
	Message        string `json:"message"`
}

// SendNotification handles notification requests
func (h *NotificationHandlers) SendNotification(w http.ResponseWriter, r *http.Request) {
	var cmd application.SendNotificationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, notificationResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	response, err := h.sendNotification.Execute(r.Context(), &cmd)
	if err != nil {
		writeJSON(w, http.StatusOK, notificationResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, notificationResponse{
		Success:        true,
		NotificationID: response.NotificationID,
		Message:        "notification sent",
	})
}

// SendFailureNotification handles failure notification requests
func (h *NotificationHandlers) SendFailureNotification(w http.ResponseWriter, r *http.Request) {
	var cmd application.SendFailureNotificationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, notificationResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	response, err := h.sendFailureNotification.Execute(r.Context(), &cmd)
	if err != nil {
		writeJSON(w, http.StatusOK, notificationResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, notificationResponse{
		Success:        true,
		NotificationID: response.NotificationID,
		Message:        "failure notification sent",
	})
}

// RegisterRoutes registers notification routes
func (h *NotificationHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Post("/", h.SendNotification)
		r.Post("/failure", h.SendFailureNotification)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
