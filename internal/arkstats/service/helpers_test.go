package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store/drivers/sqlite"
	"github.com/Rezosh/server-stats-website/pkg/cryptox"
	"github.com/Rezosh/server-stats-website/pkg/discord"
)

// fakeDiscord is a configurable stand-in for the Discord REST API. Handlers
// default to sensible happy-path responses; tests override what they need.
type fakeDiscord struct {
	srv *httptest.Server

	tokenStatus int
	creds       discord.Credentials

	me discord.User

	userGuilds []discord.PartialGuild
	botGuilds  []discord.PartialGuild

	memberStatus int
	member       discord.Member
}

func newFakeDiscord(t *testing.T) *fakeDiscord {
	t.Helper()

	f := &fakeDiscord{
		tokenStatus: http.StatusOK,
		creds: discord.Credentials{
			AccessToken:  "plain-access",
			TokenType:    "Bearer",
			ExpiresIn:    604800,
			RefreshToken: "plain-refresh",
			Scope:        "identify guilds",
		},
		me: discord.User{
			ID:            "user-1",
			Username:      "survivor",
			Discriminator: "0420",
			Avatar:        "a_abcdef",
		},
		memberStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		_ = json.NewEncoder(w).Encode(f.creds)
	})
	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.me)
	})
	mux.HandleFunc("GET /users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Authorization"), "Bot ") {
			_ = json.NewEncoder(w).Encode(f.botGuilds)
			return
		}
		_ = json.NewEncoder(w).Encode(f.userGuilds)
	})
	mux.HandleFunc("GET /guilds/{guildID}/members/{userID}", func(w http.ResponseWriter, r *http.Request) {
		if f.memberStatus != http.StatusOK {
			w.WriteHeader(f.memberStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unknown Member"})
			return
		}
		_ = json.NewEncoder(w).Encode(f.member)
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

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeDiscord) client() *discord.Client {
	return discord.NewClient(discord.Config{
		BaseURL:      f.srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost/callback",
		BotToken:     "bot-token",
		Timeout:      2 * time.Second,
	})
}

func newServiceStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestCipher(t *testing.T) *cryptox.TokenCipher {
	t.Helper()

	c, err := cryptox.NewTokenCipher("test-secret")
	require.NoError(t, err)
	return c
}

func newTestSessions() *SessionService {
	return &SessionService{
		Secret: []byte("session-secret"),
		Issuer: "arkstats-test",
	}
}
