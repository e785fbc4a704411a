package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/cryptox"
	"github.com/Rezosh/server-stats-website/pkg/discord"
	"github.com/Rezosh/server-stats-website/pkg/idx"
	"github.com/Rezosh/server-stats-website/pkg/slogx"
)

var ErrGuildForbidden = errors.New("guild_forbidden")

// GuildService resolves which guilds a user can manage and splits them by
// whether the bot is already present.
type GuildService struct {
	Store   store.Store
	Discord *discord.Client
	Cipher  *cryptox.TokenCipher
}

// GuildPartition is the result of a guild resolution. Mutual guilds have the
// bot installed; Invitable guilds do not yet. Every guild in either slice is
// one the user holds Manage Server in.
type GuildPartition struct {
	Mutual    []discord.PartialGuild
	Invitable []discord.PartialGuild
}

// WatcherOverview is a watcher decorated with human-readable names fetched
// from Discord. ChannelName and CreatedByTag fall back to the raw ids when
// the lookups fail.
type WatcherOverview struct {
	Watcher      domain.ServerWatcher
	ChannelName  string
	CreatedByTag string
}

// GuildOverview is the management view of a single guild.
type GuildOverview struct {
	Guild    discord.Guild
	Watchers []WatcherOverview
}

// Resolve fetches the user's guilds and the bot's guilds concurrently, keeps
// the guilds the user can manage, and partitions them by bot membership.
func (s *GuildService) Resolve(ctx context.Context, accessToken string) (GuildPartition, error) {
	var (
		userGuilds []discord.PartialGuild
		botGuilds  []discord.PartialGuild
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userGuilds, err = s.Discord.CurrentUserGuilds(gctx, accessToken)
		return err
	})
	g.Go(func() error {
		var err error
		botGuilds, err = s.Discord.BotGuilds(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return GuildPartition{}, err
	}

	botSet := make(map[string]struct{}, len(botGuilds))
	for _, bg := range botGuilds {
		botSet[bg.ID] = struct{}{}
	}

	var out GuildPartition
	for _, ug := range userGuilds {
		perms, err := discord.ParsePermissions(ug.Permissions)
		if err != nil {
			slogx.FromContext(ctx).Warn("skipping guild with malformed permissions",
				slog.String("guild_id", ug.ID),
			)
			continue
		}
		if !perms.Has(discord.PermManageGuild) {
			continue
		}

		if _, ok := botSet[ug.ID]; ok {
			out.Mutual = append(out.Mutual, ug)
		} else {
			out.Invitable = append(out.Invitable, ug)
		}
	}

	sortGuilds(out.Mutual)
	sortGuilds(out.Invitable)
	return out, nil
}

// ResolveForUser decrypts the user's stored access token and resolves their
// guilds with it.
func (s *GuildService) ResolveForUser(ctx context.Context, discordID string) (GuildPartition, error) {
	user, err := s.Store.Users().GetByDiscordID(ctx, discordID)
	if err != nil {
		return GuildPartition{}, err
	}

	accessToken, err := s.Cipher.Decrypt(user.AccessToken)
	if err != nil {
		return GuildPartition{}, err
	}

	return s.Resolve(ctx, accessToken)
}

// Overview builds the management view of one guild. The caller must hold
// Manage Server in the guild; otherwise ErrGuildForbidden. Channel and user
// name lookups are best effort.
func (s *GuildService) Overview(ctx context.Context, discordID, guildID string) (GuildOverview, error) {
	partition, err := s.ResolveForUser(ctx, discordID)
	if err != nil {
		return GuildOverview{}, err
	}
	if !containsGuild(partition.Mutual, guildID) {
		return GuildOverview{}, ErrGuildForbidden
	}

	guild, err := s.Discord.Guild(ctx, guildID)
	if err != nil {
		return GuildOverview{}, err
	}

	watchers, err := s.Store.Watchers().ListByGuild(ctx, guildID)
	if err != nil {
		return GuildOverview{}, err
	}

	overview := GuildOverview{Guild: guild, Watchers: make([]WatcherOverview, 0, len(watchers))}
	for _, w := range watchers {
		wo := WatcherOverview{
			Watcher:      w,
			ChannelName:  w.ChannelID,
			CreatedByTag: w.UserID,
		}
		if ch, err := s.Discord.Channel(ctx, w.ChannelID); err == nil {
			wo.ChannelName = ch.Name
		}
		if u, err := s.Discord.UserByID(ctx, w.UserID); err == nil {
			wo.CreatedByTag = u.Tag()
		}
		overview.Watchers = append(overview.Watchers, wo)
	}

	return overview, nil
}

// DeleteWatcher removes a watcher from a guild the caller manages.
func (s *GuildService) DeleteWatcher(ctx context.Context, discordID, guildID string, watcherID idx.ID) error {
	partition, err := s.ResolveForUser(ctx, discordID)
	if err != nil {
		return err
	}
	if !containsGuild(partition.Mutual, guildID) {
		return ErrGuildForbidden
	}

	return s.Store.Watchers().Delete(ctx, watcherID, guildID)
}

func containsGuild(guilds []discord.PartialGuild, id string) bool {
	for _, g := range guilds {
		if g.ID == id {
			return true
		}
	}
	return false
}

func sortGuilds(guilds []discord.PartialGuild) {
	sort.Slice(guilds, func(i, j int) bool { return guilds[i].Name < guilds[j].Name })
}
