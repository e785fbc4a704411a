package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/pkg/httpx"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

type NotificationResponse struct {
	ID          string    `json:"id"`
	ServerName  string    `json:"server_name"`
	Trigger     string    `json:"trigger"`
	PlayerCount int       `json:"player_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateNotificationRequest struct {
	ServerName  string `json:"server_name"`
	Trigger     string `json:"trigger"`
	PlayerCount int    `json:"player_count"`
}

func toNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID.String(),
		ServerName:  n.ServerName,
		Trigger:     string(n.Trigger),
		PlayerCount: n.PlayerCount,
		CreatedAt:   n.CreatedAt,
	}
}

// HandleList returns the caller's population alerts, newest first.
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.NotificationService.List(r.Context(), httpx.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, toNotificationResponse(n))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate registers a new population alert for the caller.
func (h *NotificationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	n, err := h.NotificationService.Create(
		r.Context(),
		httpx.UserID(r.Context()),
		req.ServerName,
		domain.Trigger(req.Trigger),
		req.PlayerCount,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toNotificationResponse(n))
}

// HandleDelete removes one of the caller's alerts.
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed notification id")
		return
	}

	if err := h.NotificationService.Delete(r.Context(), httpx.UserID(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
