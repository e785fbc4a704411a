package service

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/pkg/discord"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

const manageGuild = "32" // MANAGE_GUILD bit as Discord serialises it

func newGuildService(t *testing.T, f *fakeDiscord) *GuildService {
	t.Helper()

	return &GuildService{
		Store:   newServiceStore(t),
		Discord: f.client(),
		Cipher:  newTestCipher(t),
	}
}

func TestResolvePartitionsByBotMembership(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		{ID: "g1", Name: "Alpha", Permissions: manageGuild},
		{ID: "g2", Name: "Bravo", Permissions: manageGuild},
		{ID: "g3", Name: "Charlie", Permissions: "0"}, // no manage bit
	}
	f.botGuilds = []discord.PartialGuild{
		{ID: "g2", Name: "Bravo"},
		{ID: "g9", Name: "BotOnly"},
	}

	svc := newGuildService(t, f)
	p, err := svc.Resolve(context.Background(), "user-token")
	require.NoError(t, err)

	require.Len(t, p.Mutual, 1)
	require.Equal(t, "g2", p.Mutual[0].ID)
	require.Len(t, p.Invitable, 1)
	require.Equal(t, "g1", p.Invitable[0].ID)
}

func TestResolveLeaksNoGoroutines(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		{ID: "g1", Name: "Alpha", Permissions: manageGuild},
	}

	// Resolve needs no store access, so the service can run without one and
	// the leak check only sees the HTTP machinery.
	svc := &GuildService{Discord: f.client(), Cipher: newTestCipher(t)}
	_, err := svc.Resolve(context.Background(), "user-token")
	require.NoError(t, err)

	f.srv.Close()
	if tr, ok := http.DefaultTransport.(*http.Transport); ok {
		tr.CloseIdleConnections()
	}
	goleak.VerifyNone(t)
}

func TestResolvePartitionIsDisjointAndCoversManaged(t *testing.T) {
	f := newFakeDiscord(t)
	for i := 0; i < 20; i++ {
		id := "g" + strconv.Itoa(i)
		f.userGuilds = append(f.userGuilds, discord.PartialGuild{
			ID: id, Name: id, Permissions: manageGuild,
		})
		if i%3 == 0 {
			f.botGuilds = append(f.botGuilds, discord.PartialGuild{ID: id, Name: id})
		}
	}

	svc := newGuildService(t, f)
	p, err := svc.Resolve(context.Background(), "user-token")
	require.NoError(t, err)

	// Every managed guild lands in exactly one bucket.
	require.Equal(t, len(f.userGuilds), len(p.Mutual)+len(p.Invitable))

	seen := map[string]struct{}{}
	for _, g := range append(append([]discord.PartialGuild{}, p.Mutual...), p.Invitable...) {
		_, dup := seen[g.ID]
		require.False(t, dup, "guild %s appears in both buckets", g.ID)
		seen[g.ID] = struct{}{}
	}
}

func TestResolveRequiresExactManageBit(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		// Other permission bits set but not MANAGE_GUILD.
		{ID: "g1", Name: "Alpha", Permissions: "1024"},
		{ID: "g2", Name: "Bravo", Permissions: "not-a-number"},
	}

	svc := newGuildService(t, f)
	p, err := svc.Resolve(context.Background(), "user-token")
	require.NoError(t, err)
	require.Empty(t, p.Mutual)
	require.Empty(t, p.Invitable)
}

func TestResolveForUserDecryptsStoredToken(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		{ID: "g1", Name: "Alpha", Permissions: manageGuild},
	}

	svc := newGuildService(t, f)
	ctx := context.Background()

	pair, err := svc.Cipher.EncryptPair("user-token", "user-refresh")
	require.NoError(t, err)
	require.NoError(t, svc.Store.Users().Upsert(ctx, domain.User{
		DiscordID:     "user-1",
		Username:      "survivor",
		Discriminator: "0420",
		Tag:           "survivor#0420",
		AccessToken:   pair.AccessToken,
		RefreshToken:  pair.RefreshToken,
	}))

	p, err := svc.ResolveForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, p.Invitable, 1)
}

func TestOverviewRequiresMutualGuild(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		{ID: "g1", Name: "Alpha", Permissions: manageGuild},
	}
	// Bot not in g1, so it is invitable, not manageable here.

	svc := newGuildService(t, f)
	ctx := context.Background()
	seedUser(t, svc, ctx, "user-1")

	_, err := svc.Overview(ctx, "user-1", "g1")
	require.ErrorIs(t, err, ErrGuildForbidden)
}

func TestOverviewEnrichesWatchers(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		{ID: "g1", Name: "Alpha", Permissions: manageGuild},
	}
	f.botGuilds = []discord.PartialGuild{{ID: "g1", Name: "Alpha"}}

	svc := newGuildService(t, f)
	ctx := context.Background()
	seedUser(t, svc, ctx, "user-1")

	require.NoError(t, svc.Store.Watchers().Create(ctx, domain.ServerWatcher{
		ID:         idx.New(),
		GuildID:    "g1",
		ChannelID:  "chan-1",
		ServerName: "NA-PVP-TheIsland42",
		Cluster:    "NewXboxPVP",
		UserID:     "creator-1",
		CreatedAt:  time.Now(),
	}))

	ov, err := svc.Overview(ctx, "user-1", "g1")
	require.NoError(t, err)
	require.Equal(t, "Test Guild", ov.Guild.Name)
	require.Len(t, ov.Watchers, 1)
	require.Equal(t, "general", ov.Watchers[0].ChannelName)
	require.Equal(t, "creator#0001", ov.Watchers[0].CreatedByTag)
}

func TestDeleteWatcherScopedToManagedGuild(t *testing.T) {
	f := newFakeDiscord(t)
	f.userGuilds = []discord.PartialGuild{
		{ID: "g1", Name: "Alpha", Permissions: manageGuild},
	}
	f.botGuilds = []discord.PartialGuild{{ID: "g1", Name: "Alpha"}}

	svc := newGuildService(t, f)
	ctx := context.Background()
	seedUser(t, svc, ctx, "user-1")

	w := domain.ServerWatcher{
		ID:        idx.New(),
		GuildID:   "g1",
		ChannelID: "chan-1",
		UserID:    "creator-1",
		CreatedAt: time.Now(),
	}
	require.NoError(t, svc.Store.Watchers().Create(ctx, w))

	// Deleting via a guild the user does not manage is forbidden.
	require.ErrorIs(t, svc.DeleteWatcher(ctx, "user-1", "g2", w.ID), ErrGuildForbidden)

	require.NoError(t, svc.DeleteWatcher(ctx, "user-1", "g1", w.ID))
	left, err := svc.Store.Watchers().ListByGuild(ctx, "g1")
	require.NoError(t, err)
	require.Empty(t, left)
}

func seedUser(t *testing.T, svc *GuildService, ctx context.Context, discordID string) {
	t.Helper()

	pair, err := svc.Cipher.EncryptPair("user-token", "user-refresh")
	require.NoError(t, err)
	require.NoError(t, svc.Store.Users().Upsert(ctx, domain.User{
		DiscordID:     discordID,
		Username:      "survivor",
		Discriminator: "0420",
		Tag:           "survivor#0420",
		AccessToken:   pair.AccessToken,
		RefreshToken:  pair.RefreshToken,
	}))
}
