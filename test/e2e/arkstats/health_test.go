package arkstats_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	mocks := startMockUpstreams(t)
	baseURL := setupStatsContainer(t, mocks)

	var livez struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	status := getJSON(t, baseURL+"/livez", "", &livez)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", livez.Status)
	require.NotEmpty(t, livez.Version)

	var readyz struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
		} `json:"checks"`
	}
	status = getJSON(t, baseURL+"/readyz", "", &readyz)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", readyz.Status)
	require.Equal(t, "ok", readyz.Checks.Database)
}
