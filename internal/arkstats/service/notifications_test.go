package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
)

func seedNotificationUser(t *testing.T, st store.Store, discordID string) {
	t.Helper()

	require.NoError(t, st.Users().Upsert(context.Background(), domain.User{
		DiscordID:     discordID,
		Username:      "survivor",
		Discriminator: "0420",
		Tag:           "survivor#0420",
		AccessToken:   "enc",
		RefreshToken:  "enc",
	}))
}

func TestNotificationCreateAndList(t *testing.T) {
	st := newServiceStore(t)
	svc := &NotificationService{Store: st}
	ctx := context.Background()
	seedNotificationUser(t, st, "user-1")

	n, err := svc.Create(ctx, "user-1", "NA-PVP-TheIsland42", domain.TriggerBelow, 5)
	require.NoError(t, err)
	require.False(t, n.ID.IsZero())

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.TriggerBelow, list[0].Trigger)
}

func TestNotificationCreateValidation(t *testing.T) {
	st := newServiceStore(t)
	svc := &NotificationService{Store: st}
	ctx := context.Background()
	seedNotificationUser(t, st, "user-1")

	_, err := svc.Create(ctx, "user-1", "  ", domain.TriggerAbove, 5)
	require.ErrorIs(t, err, ErrInvalidNotification)

	_, err = svc.Create(ctx, "user-1", "srv", domain.Trigger("sideways"), 5)
	require.ErrorIs(t, err, ErrInvalidNotification)

	_, err = svc.Create(ctx, "user-1", "srv", domain.TriggerAbove, -1)
	require.ErrorIs(t, err, ErrInvalidNotification)
}

func TestNotificationDeleteEnforcesOwnership(t *testing.T) {
	st := newServiceStore(t)
	svc := &NotificationService{Store: st}
	ctx := context.Background()
	seedNotificationUser(t, st, "owner")
	seedNotificationUser(t, st, "other")

	n, err := svc.Create(ctx, "owner", "srv", domain.TriggerAbove, 50)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "other", n.ID), store.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "owner", n.ID))
}
