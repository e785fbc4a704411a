package arkstats_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerBrowser(t *testing.T) {
	mocks := startMockUpstreams(t)
	baseURL := setupStatsContainer(t, mocks)

	var list struct {
		Servers []struct {
			Name         string `json:"name"`
			Map          string `json:"map"`
			SearchHandle string `json:"search_handle"`
		} `json:"servers"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	}
	status := getJSON(t, baseURL+"/v1/servers", "", &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Servers, 12)
	require.Equal(t, 15, list.Total)
	require.Equal(t, 2, list.TotalPages)
	require.Equal(t, "Island", list.Servers[0].Map)

	status = getJSON(t, baseURL+"/v1/servers?page=2", "", &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Servers, 3)
}

func TestServerDetail(t *testing.T) {
	mocks := startMockUpstreams(t)
	baseURL := setupStatsContainer(t, mocks)

	var detail struct {
		Server struct {
			Name string `json:"name"`
		} `json:"server"`
		History []struct {
			Players int `json:"players"`
		} `json:"history"`
	}
	status := getJSON(t, baseURL+"/v1/servers/theisland03", "", &detail)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "NA-PVP-TheIsland03", detail.Server.Name)

	// The sampler takes a snapshot at startup, so at least one point exists.
	require.NotEmpty(t, detail.History)
	require.Equal(t, 3, detail.History[0].Players)

	status = getJSON(t, baseURL+"/v1/servers/nope", "", nil)
	require.Equal(t, http.StatusNotFound, status)
}
