package http

import (
	"errors"
	"net/http"

	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/cryptox"
	"github.com/Rezosh/server-stats-website/pkg/discord"
	"github.com/Rezosh/server-stats-website/pkg/httpx"
	"github.com/Rezosh/server-stats-website/pkg/slogx"
)

// writeServiceError maps service-layer failures onto HTTP statuses. Stored
// credentials that no longer decrypt, or that Discord rejects, read as 401 so
// the frontend can force a fresh login. Upstream timeouts surface as 504.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGrant),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidNotification):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, cryptox.ErrDecrypt),
		errors.Is(err, discord.ErrUpstreamAuth),
		errors.Is(err, service.ErrInvalidSession):
		httpx.WriteError(w, http.StatusUnauthorized, "authentication with Discord is no longer valid")

	case errors.Is(err, service.ErrGuildForbidden):
		httpx.WriteError(w, http.StatusForbidden, "you do not manage this guild")

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrServerNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")

	case errors.Is(err, discord.ErrUpstreamTimeout):
		httpx.WriteError(w, http.StatusGatewayTimeout, "Discord did not respond in time")

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
