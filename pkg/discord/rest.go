package discord

import "context"

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (User, error) {
	var u User
	if err := c.getAsUser(ctx, "get current user", "/users/@me", accessToken, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// CurrentUserGuilds lists the guilds the authenticated user belongs to.
// Discord caps the list at 200 guilds per call; no paging is done here.
func (c *Client) CurrentUserGuilds(ctx context.Context, accessToken string) ([]PartialGuild, error) {
	var guilds []PartialGuild
	if err := c.getAsUser(ctx, "list user guilds", "/users/@me/guilds", accessToken, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// BotGuilds lists the guilds the bot account belongs to.
func (c *Client) BotGuilds(ctx context.Context) ([]PartialGuild, error) {
	var guilds []PartialGuild
	if err := c.getAsBot(ctx, "list bot guilds", "/users/@me/guilds", &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// Guild fetches a guild the bot is a member of.
func (c *Client) Guild(ctx context.Context, guildID string) (Guild, error) {
	var g Guild
	if err := c.getAsBot(ctx, "get guild", "/guilds/"+guildID, &g); err != nil {
		return Guild{}, err
	}
	return g, nil
}

// GuildMember fetches a member of a guild the bot can see.
func (c *Client) GuildMember(ctx context.Context, guildID, userID string) (Member, error) {
	var m Member
	if err := c.getAsBot(ctx, "get guild member", "/guilds/"+guildID+"/members/"+userID, &m); err != nil {
		return Member{}, err
	}
	return m, nil
}

// UserByID fetches an arbitrary user's public profile with the bot token.
func (c *Client) UserByID(ctx context.Context, userID string) (User, error) {
	var u User
	if err := c.getAsBot(ctx, "get user", "/users/"+userID, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Channel fetches a channel the bot can see.
func (c *Client) Channel(ctx context.Context, channelID string) (Channel, error) {
	var ch Channel
	if err := c.getAsBot(ctx, "get channel", "/channels/"+channelID, &ch); err != nil {
		return Channel{}, err
	}
	return ch, nil
}
