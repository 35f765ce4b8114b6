package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func seedMatch(t *testing.T, ts *testutil.TestServer, id, name string) {
	t.Helper()

	err := ts.Repos.Match.Upsert(context.Background(), &domain.Match{
		ID:           id,
		Name:         name,
		MatchType:    "t20",
		Status:       "Live",
		Venue:        "Eden Gardens",
		MatchStarted: true,
		RawData:      datatypes.JSON(`{"id":"` + id + `","name":"` + name + `"}`),
		LastSyncedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestMatchHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	seedMatch(t, ts, "m1", "India vs Australia")
	seedMatch(t, ts, "m2", "England vs Pakistan")

	resp, err := http.Get(ts.APIURL("/matches"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status string          `json:"status"`
		Data   []*domain.Match `json:"data"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, "success", result.Status)
	assert.Len(t, result.Data, 2)
}

func TestMatchHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	seedMatch(t, ts, "m1", "India vs Australia")

	t.Run("known match", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/matches/m1"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Status string        `json:"status"`
			Data   *domain.Match `json:"data"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "India vs Australia", result.Data.Name)
	})

	t.Run("unknown match", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/matches/nope"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Match not found")
	})
}

func TestHealthHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/health"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "connected", result.Database)
}
