package domain

import (
	"time"

	"github.com/Rezosh/server-stats-website/pkg/idx"
)

// Trigger is the direction a population notification fires on.
type Trigger string

const (
	TriggerAbove Trigger = "above"
	TriggerBelow Trigger = "below"
)

// Valid reports whether t is a known trigger.
func (t Trigger) Valid() bool {
	return t == TriggerAbove || t == TriggerBelow
}

// Notification asks the bot to alert a user when a server's population
// crosses a threshold.
type Notification struct {
	ID          idx.ID
	UserID      string // Discord id of the owner
	ServerName  string
	Trigger     Trigger
	PlayerCount int
	CreatedAt   time.Time
}
