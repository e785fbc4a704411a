package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store/drivers/sqlite"
	"github.com/Rezosh/server-stats-website/pkg/arkweb"
	"github.com/Rezosh/server-stats-website/pkg/cryptox"
	"github.com/Rezosh/server-stats-website/pkg/discord"
)

// testEnv wires a full router against fake Discord and Ark upstreams and an
// in-memory store.
type testEnv struct {
	router *Router
	store  store.Store

	userGuilds []discord.PartialGuild
	botGuilds  []discord.PartialGuild
	roster     []arkweb.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(discord.Credentials{
			AccessToken:  "plain-access",
			TokenType:    "Bearer",
			ExpiresIn:    604800,
			RefreshToken: "plain-refresh",
			Scope:        "identify guilds",
		})
	})
	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(discord.User{
			ID: "user-1", Username: "survivor", Discriminator: "0420",
		})
	})
	mux.HandleFunc("GET /users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Authorization"), "Bot ") {
			_ = json.NewEncoder(w).Encode(env.botGuilds)
			return
		}
		_ = json.NewEncoder(w).Encode(env.userGuilds)
	})
	mux.HandleFunc("GET /guilds/{guildID}/members/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /guilds/{guildID}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(discord.Guild{ID: r.PathValue("guildID"), Name: "Test Guild"})
	})
	mux.HandleFunc("GET /channels/{channelID}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(discord.Channel{ID: r.PathValue("channelID"), Name: "general"})
	})
	mux.HandleFunc("GET /users/{userID}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(discord.User{
			ID: r.PathValue("userID"), Username: "creator", Discriminator: "0001",
		})
	})
	discordSrv := httptest.NewServer(mux)
	t.Cleanup(discordSrv.Close)

	arkSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(env.roster)
	}))
	t.Cleanup(arkSrv.Close)

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	dc := discord.NewClient(discord.Config{
		BaseURL:      discordSrv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost/callback",
		BotToken:     "bot-token",
		Timeout:      2 * time.Second,
	})
	ark := arkweb.NewClient(arkSrv.URL, 2*time.Second)

	cipher, err := cryptox.NewTokenCipher("test-secret")
	require.NoError(t, err)

	sessions := &service.SessionService{Secret: []byte("session-secret"), Issuer: "arkstats-test"}

	router := NewRouter("test", st, slog.Default())
	router.AuthService = &service.AuthService{
		Store:    st,
		Discord:  dc,
		Cipher:   cipher,
		Sessions: sessions,
	}
	router.GuildService = &service.GuildService{Store: st, Discord: dc, Cipher: cipher}
	router.ServerService = &service.ServerService{Store: st, Ark: ark, Cluster: "NewXboxPVP"}
	router.NotificationService = &service.NotificationService{Store: st}
	router.ApplyRoutes()

	env.router = router
	env.store = st
	return env
}

// do performs a request against the router, optionally as a logged-in user.
func (e *testEnv) do(t *testing.T, method, target, sessionToken string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	req.RemoteAddr = "10.0.0.1:12345"
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login runs the full callback flow and returns the minted session token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	state, err := e.router.AuthService.Sessions.MintState()
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/v1/auth/callback?code=auth-code&state="+state, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		SessionToken string `json:"session_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionToken)
	return resp.SessionToken
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
