package domain

import "time"

// User is a Discord account linked to this service. The token fields hold
// the encrypted credential pair; plaintext tokens never reach the store.
type User struct {
	DiscordID     string
	Username      string
	Discriminator string
	Tag           string // username#discriminator
	Avatar        string
	AccessToken   string // encrypted
	RefreshToken  string // encrypted
	Premium       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
