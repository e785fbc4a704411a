// Package arkweb fetches the live Ark server roster from the cluster's web
// API. The upstream is a single JSON endpoint returning every server in every
// cluster; filtering happens client-side.
package arkweb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Server is one game-server entry in the upstream roster.
type Server struct {
	IP           string `json:"IP"`
	Name         string `json:"Name"`
	MaxPlayers   int    `json:"MaxPlayers"`
	NumPlayers   int    `json:"NumPlayers"`
	Port         int    `json:"Port"`
	ClusterID    string `json:"ClusterId"`
	MapName      string `json:"MapName"`
	DayTime      string `json:"DayTime"`
	SearchHandle string `json:"SearchHandle"`
}

// mapDisplayNames maps internal Ark map identifiers to their player-facing
// names.
var mapDisplayNames = map[string]string{
	"ScorchedEarth_P": "Scorched Earth",
	"Ragnarok":        "Ragnarok",
	"TheIsland":       "Island",
	"Aberration_P":    "Aberration",
	"Extinction":      "Extinction",
	"Valguero_P":      "Valguero",
	"Genesis":         "Genesis",
	"Gen2":            "Genesis 2",
	"CrystalIsles":    "Crystal Isles",
	"TheCenter":       "Center",
	"Fjordur":         "Fjordur",
	"LostIsland":      "Lost Island",
}

// MapDisplayName returns the player-facing name for an internal map id,
// falling back to the id itself for maps we do not know about.
func (s Server) MapDisplayName() string {
	if name, ok := mapDisplayNames[s.MapName]; ok {
		return name
	}
	return s.MapName
}

// Client fetches the server roster.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a roster client for the given endpoint URL.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Servers fetches the complete roster. clusterID, when non-empty, filters the
// result to a single cluster.
func (c *Client) Servers(ctx context.Context, clusterID string) ([]Server, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("arkweb: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arkweb: fetch servers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arkweb: fetch servers: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("arkweb: read response: %w", err)
	}

	var servers []Server
	if err := json.Unmarshal(body, &servers); err != nil {
		return nil, fmt.Errorf("arkweb: decode response: %w", err)
	}

	if clusterID == "" {
		return servers, nil
	}

	filtered := servers[:0]
	for _, s := range servers {
		if s.ClusterID == clusterID {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}
