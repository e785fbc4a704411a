package domain

import (
	"time"

	"github.com/Rezosh/server-stats-website/pkg/idx"
)

// ServerWatcher is a per-guild population tracker the bot keeps updated in a
// channel. The website reads and deletes these; the bot creates them.
type ServerWatcher struct {
	ID              idx.ID
	GuildID         string
	ChannelID       string
	ServerName      string
	Cluster         string
	LastPlayerCount int
	UserID          string // Discord id of whoever set the watcher up
	MessageID       string
	WebhookID       string
	WebhookToken    string
	CreatedAt       time.Time
}
