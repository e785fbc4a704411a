package http

import (
	"net/http"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/pkg/discord"
	"github.com/Rezosh/server-stats-website/pkg/httpx"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

type GuildsHandler struct {
	GuildService *service.GuildService
}

type GuildResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type GuildListResponse struct {
	Mutual    []GuildResponse `json:"mutual"`
	Invitable []GuildResponse `json:"invitable"`
}

type WatcherResponse struct {
	ID              string    `json:"id"`
	ChannelID       string    `json:"channel_id"`
	ChannelName     string    `json:"channel_name"`
	ServerName      string    `json:"server_name"`
	Cluster         string    `json:"cluster"`
	LastPlayerCount int       `json:"last_player_count"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

type GuildOverviewResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Icon     string            `json:"icon"`
	Watchers []WatcherResponse `json:"watchers"`
}

func toGuildResponses(guilds []discord.PartialGuild) []GuildResponse {
	out := make([]GuildResponse, 0, len(guilds))
	for _, g := range guilds {
		out = append(out, GuildResponse{ID: g.ID, Name: g.Name, Icon: g.Icon})
	}
	return out
}

// HandleList returns the caller's manageable guilds, split by whether the bot
// is already installed.
func (h *GuildsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	partition, err := h.GuildService.ResolveForUser(r.Context(), httpx.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, GuildListResponse{
		Mutual:    toGuildResponses(partition.Mutual),
		Invitable: toGuildResponses(partition.Invitable),
	})
}

// HandleOverview returns the management view of one guild.
func (h *GuildsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.GuildService.Overview(r.Context(), httpx.UserID(r.Context()), r.PathValue("guildID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := GuildOverviewResponse{
		ID:       ov.Guild.ID,
		Name:     ov.Guild.Name,
		Icon:     ov.Guild.Icon,
		Watchers: make([]WatcherResponse, 0, len(ov.Watchers)),
	}
	for _, wo := range ov.Watchers {
		resp.Watchers = append(resp.Watchers, WatcherResponse{
			ID:              wo.Watcher.ID.String(),
			ChannelID:       wo.Watcher.ChannelID,
			ChannelName:     wo.ChannelName,
			ServerName:      wo.Watcher.ServerName,
			Cluster:         wo.Watcher.Cluster,
			LastPlayerCount: wo.Watcher.LastPlayerCount,
			CreatedBy:       wo.CreatedByTag,
			CreatedAt:       wo.Watcher.CreatedAt,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDeleteWatcher removes a watcher from a guild the caller manages.
func (h *GuildsHandler) HandleDeleteWatcher(w http.ResponseWriter, r *http.Request) {
	watcherID, err := idx.Parse(r.PathValue("watcherID"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed watcher id")
		return
	}

	err = h.GuildService.DeleteWatcher(r.Context(), httpx.UserID(r.Context()), r.PathValue("guildID"), watcherID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
