package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/pkg/arkweb"
	"github.com/Rezosh/server-stats-website/pkg/httpx"
)

type ServersHandler struct {
	ServerService *service.ServerService
}

type ServerResponse struct {
	Name         string `json:"name"`
	Map          string `json:"map"`
	NumPlayers   int    `json:"num_players"`
	MaxPlayers   int    `json:"max_players"`
	DayTime      string `json:"day_time"`
	SearchHandle string `json:"search_handle"`
}

type ServerListResponse struct {
	Servers    []ServerResponse `json:"servers"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

type HistoryPointResponse struct {
	Players   int       `json:"players"`
	SampledAt time.Time `json:"sampled_at"`
}

type ServerDetailResponse struct {
	Server  ServerResponse         `json:"server"`
	History []HistoryPointResponse `json:"history"`
}

func toServerResponse(s arkweb.Server) ServerResponse {
	return ServerResponse{
		Name:         s.Name,
		Map:          s.MapDisplayName(),
		NumPlayers:   s.NumPlayers,
		MaxPlayers:   s.MaxPlayers,
		DayTime:      s.DayTime,
		SearchHandle: s.SearchHandle,
	}
}

// HandleList serves the public server browser with optional fuzzy search.
func (h *ServersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "malformed page number")
			return
		}
		page = parsed
	}

	result, err := h.ServerService.List(r.Context(), q.Get("q"), page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := ServerListResponse{
		Servers:    make([]ServerResponse, 0, len(result.Servers)),
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	}
	for _, s := range result.Servers {
		resp.Servers = append(resp.Servers, toServerResponse(s))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet serves a single server plus its recent population history.
func (h *ServersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.ServerService.Get(r.Context(), r.PathValue("handle"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := ServerDetailResponse{
		Server:  toServerResponse(detail.Server),
		History: make([]HistoryPointResponse, 0, len(detail.History)),
	}
	for _, p := range detail.History {
		resp.History = append(resp.History, HistoryPointResponse{
			Players:   p.Players,
			SampledAt: p.SampledAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
