package http

import (
	"net/http"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// UserResponse is the public shape of a linked account. Encrypted credential
// columns never leave the service.
type UserResponse struct {
	DiscordID     string `json:"discord_id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Tag           string `json:"tag"`
	Avatar        string `json:"avatar"`
	Premium       bool   `json:"premium"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		DiscordID:     u.DiscordID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Tag:           u.Tag,
		Avatar:        u.Avatar,
		Premium:       u.Premium,
	}
}

// HandleLogin starts the OAuth2 dance by minting a state token and handing
// the frontend the Discord authorize URL to redirect to.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	u, err := h.AuthService.BeginLogin()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"url": u})
}

// HandleCallback completes the OAuth2 dance. Discord redirects the browser
// here with the code and the state we minted at login.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.AuthService.Login(r.Context(), q.Get("code"), q.Get("state"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"session_token": res.SessionToken,
		"user":          toUserResponse(res.User),
	})
}

// HandleRefresh rotates the caller's stored Discord credential pair.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.RefreshCredentials(r.Context(), httpx.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleMe returns the logged-in user's stored profile.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.CurrentUser(r.Context(), httpx.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
