package store

import (
	"context"
	"errors"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Notifications() Notifications
	Watchers() Watchers
	PlayerHistory() PlayerHistory

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetByDiscordID returns a user by their Discord id.
	GetByDiscordID(ctx context.Context, discordID string) (domain.User, error)

	// Upsert creates the user or updates the existing row keyed by Discord
	// id. It is a single conditional write; the driver serialises concurrent
	// upserts of the same key.
	Upsert(ctx context.Context, u domain.User) error

	// UpdateTokens replaces the stored encrypted credential pair.
	UpdateTokens(ctx context.Context, discordID, accessToken, refreshToken string) error
}

type Notifications interface {
	// Create inserts a new notification (id is provided by the app via ULID).
	Create(ctx context.Context, n domain.Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)

	// Delete removes a notification owned by userID. Returns ErrNotFound
	// when the row is absent or owned by someone else.
	Delete(ctx context.Context, id idx.ID, userID string) error
}

type Watchers interface {
	// Create inserts a new server watcher.
	Create(ctx context.Context, w domain.ServerWatcher) error

	// ListByGuild returns all watchers configured for a guild.
	ListByGuild(ctx context.Context, guildID string) ([]domain.ServerWatcher, error)

	// Delete removes a watcher scoped to its guild. Returns ErrNotFound when
	// the row is absent or belongs to a different guild.
	Delete(ctx context.Context, id idx.ID, guildID string) error
}

type PlayerHistory interface {
	// Append records one batch of population samples.
	Append(ctx context.Context, samples []domain.PlayerSample) error

	// Recent returns up to limit samples for a server, oldest first.
	Recent(ctx context.Context, serverName string, limit int) ([]domain.PlayerSample, error)

	// PruneOlderThan deletes samples taken before cutoff and reports how
	// many rows went away. Housekeeping only.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
