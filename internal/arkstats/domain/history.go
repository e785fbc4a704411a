package domain

import "time"

// PlayerSample is one point in a server's population history.
type PlayerSample struct {
	ServerName string
	Players    int
	SampledAt  time.Time
}
