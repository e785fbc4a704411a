package discord

import "net/url"

// DefaultAuthorizeEndpoint is where users are sent to approve the OAuth2 grant.
const DefaultAuthorizeEndpoint = "https://discord.com/oauth2/authorize"

// Scopes requested for every login. "identify" gives us the profile and
// "guilds" the guild list used for dashboard authorisation.
const authorizeScope = "identify guilds"

// AuthorizeURL builds the URL the browser is redirected to for login. The
// state value is echoed back on the callback and must be verified there.
func (c *Client) AuthorizeURL(state string) string {
	endpoint := c.cfg.AuthorizeEndpoint
	if endpoint == "" {
		endpoint = DefaultAuthorizeEndpoint
	}

	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", authorizeScope)
	q.Set("state", state)

	return endpoint + "?" + q.Encode()
}
