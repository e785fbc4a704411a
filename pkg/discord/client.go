// Package discord is a minimal client for the pieces of the Discord REST API
// this service consumes: the OAuth2 token endpoint, the current-user profile
// and guild list, and a handful of bot-token lookups. It deliberately avoids
// a full API binding so that every call stays bounded by the caller's context
// and failures map onto the service's upstream error taxonomy.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production Discord API root.
const DefaultBaseURL = "https://discord.com/api/v10"

// Config carries the application credentials. All values come from process
// configuration and are immutable after start.
type Config struct {
	BaseURL      string // defaults to DefaultBaseURL
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BotToken     string

	// AuthorizeEndpoint overrides where login redirects are sent. Defaults
	// to DefaultAuthorizeEndpoint.
	AuthorizeEndpoint string

	// Timeout bounds each outbound call in addition to any deadline on the
	// caller's context. Defaults to 10s.
	Timeout time.Duration
}

// Client talks to the Discord REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// get performs an authorised GET and decodes the JSON body into target.
func (c *Client) get(ctx context.Context, op, path, authorization string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("discord: %s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return classifyTransport(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return authError(op, resp.StatusCode, errorMessage(body))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return authError(op, resp.StatusCode, "malformed response body")
	}

	return nil
}

// getAsUser performs a GET with the user's bearer token.
func (c *Client) getAsUser(ctx context.Context, op, path, accessToken string, target any) error {
	return c.get(ctx, op, path, "Bearer "+accessToken, target)
}

// getAsBot performs a GET with the application's bot token.
func (c *Client) getAsBot(ctx context.Context, op, path string, target any) error {
	return c.get(ctx, op, path, "Bot "+c.cfg.BotToken, target)
}

// errorMessage pulls the human-readable message out of a Discord error body,
// falling back to a trimmed dump of the raw body.
func errorMessage(body []byte) string {
	var parsed struct {
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.ErrorDescription != "":
			return parsed.ErrorDescription
		case parsed.Error != "":
			return parsed.Error
		}
	}

	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
