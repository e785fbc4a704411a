package discord

// Credentials is the token endpoint response for both the
// authorization_code and refresh_token grants.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// User is the /users/@me profile projection this service cares about.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// Tag returns the classic username#discriminator form.
func (u User) Tag() string {
	return u.Username + "#" + u.Discriminator
}

// PartialGuild is the lightweight guild projection returned by
// /users/@me/guilds. Not persisted; fetched fresh per request.
type PartialGuild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Owner       bool   `json:"owner"`
	Permissions string `json:"permissions"`
}

// Guild is the fuller projection from /guilds/{id}.
type Guild struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	OwnerID string `json:"owner_id"`
}

// Member is a guild member with its role ids, as returned by
// /guilds/{id}/members/{userId}.
type Member struct {
	Roles []string `json:"roles"`
}

// HasRole reports whether the member carries the given role id.
func (m Member) HasRole(roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Channel is the /channels/{id} projection used to label watcher rows.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
