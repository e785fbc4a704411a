package arkstats_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	mocks := startMockUpstreams(t)
	baseURL := setupStatsContainer(t, mocks)

	token := login(t, baseURL)

	var me struct {
		DiscordID string `json:"discord_id"`
		Tag       string `json:"tag"`
		Premium   bool   `json:"premium"`
	}
	status := getJSON(t, baseURL+"/v1/users/@me", token, &me)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "user-1", me.DiscordID)
	require.Equal(t, "survivor#0420", me.Tag)
	require.False(t, me.Premium)
}

func TestAuthenticatedRoutesNeedSession(t *testing.T) {
	mocks := startMockUpstreams(t)
	baseURL := setupStatsContainer(t, mocks)

	status := getJSON(t, baseURL+"/v1/users/@me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status = getJSON(t, baseURL+"/v1/guilds", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestGuildResolution(t *testing.T) {
	mocks := startMockUpstreams(t)
	baseURL := setupStatsContainer(t, mocks)

	token := login(t, baseURL)

	var guilds struct {
		Mutual []struct {
			ID string `json:"id"`
		} `json:"mutual"`
		Invitable []struct {
			ID string `json:"id"`
		} `json:"invitable"`
	}
	status := getJSON(t, baseURL+"/v1/guilds", token, &guilds)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, guilds.Mutual, 1)
	require.Equal(t, "g2", guilds.Mutual[0].ID)
	require.Len(t, guilds.Invitable, 1)
	require.Equal(t, "g1", guilds.Invitable[0].ID)
}
