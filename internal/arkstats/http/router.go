package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/service"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/httpx"
	"github.com/Rezosh/server-stats-website/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService         *service.AuthService
	GuildService        *service.GuildService
	ServerService       *service.ServerService
	NotificationService *service.NotificationService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGuilds()
	r.registerServers()
	r.registerNotifications()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// sessions returns the verifier the authenticated routes gate on.
func (r *Router) sessions() httpx.SessionVerifier {
	return r.AuthService.Sessions
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// GET /auth/login - strict rate limit (starts the OAuth2 dance)
	r.Mux.Handle("GET /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/callback - strict rate limit (code exchange)
	r.Mux.Handle("GET /v1/auth/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh - rotates the stored Discord credential pair
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.SessionAuthMiddleware(r.sessions()),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// GET /users/@me - profile of the logged-in user
	r.Mux.Handle("GET /v1/users/@me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.SessionAuthMiddleware(r.sessions()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerGuilds() {
	h := &GuildsHandler{GuildService: r.GuildService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.SessionAuthMiddleware(r.sessions()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/guilds", secured(h.HandleList))
	r.Mux.Handle("GET /v1/guilds/{guildID}", secured(h.HandleOverview))
	r.Mux.Handle("DELETE /v1/guilds/{guildID}/watchers/{watcherID}", secured(h.HandleDeleteWatcher))
}

func (r *Router) registerServers() {
	h := &ServersHandler{ServerService: r.ServerService}

	// The server browser is public, so limit by IP with the public profile.
	r.Mux.Handle("GET /v1/servers",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/servers/{handle}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.SessionAuthMiddleware(r.sessions()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/notifications", secured(h.HandleList))
	r.Mux.Handle("POST /v1/notifications", secured(h.HandleCreate))
	r.Mux.Handle("DELETE /v1/notifications/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
