package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ExchangeCode redeems an OAuth2 authorization code for a credential pair.
// Returns an ErrUpstreamAuth-kinded error when Discord answers with a
// non-success status or a malformed body; the caller surfaces that as an
// authentication failure and must not retry.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Credentials, error) {
	data := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.cfg.RedirectURI},
	}

	return c.requestToken(ctx, "exchange code", data)
}

// ExchangeRefresh renews an expiring access token. Refresh is always invoked
// explicitly by a caller; there is no background refresh scheduling.
func (c *Client) ExchangeRefresh(ctx context.Context, refreshToken string) (Credentials, error) {
	data := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	return c.requestToken(ctx, "exchange refresh token", data)
}

func (c *Client) requestToken(ctx context.Context, op string, data url.Values) (Credentials, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.BaseURL+"/oauth2/token",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return Credentials{}, fmt.Errorf("discord: %s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Credentials{}, classifyTransport(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Credentials{}, classifyTransport(op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Credentials{}, authError(op, resp.StatusCode, errorMessage(body))
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return Credentials{}, authError(op, resp.StatusCode, "malformed token response")
	}

	// A 200 without tokens is as useless as a rejection.
	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return Credentials{}, authError(op, resp.StatusCode, "token response missing credentials")
	}

	return creds, nil
}
