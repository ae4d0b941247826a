package sports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "matches": [
    {
      "competition": {"name": "K League 1"},
      "homeTeam": {"name": "FC Seoul"},
      "awayTeam": {"name": "Ulsan HD"},
      "score": {"fullTime": {"home": 2, "away": 1}},
      "status": "FINISHED",
      "utcDate": "2026-08-31T10:00:00Z"
    }
  ]
}`

func TestFixturesByDateReshapesUpstreamJSON(t *testing.T) {
	var gotToken, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotQuery = r.URL.Query().Get("date")
		_, _ = w.Write([]byte(fixtureJSON))
	}))
	defer ts.Close()

	client := NewClient(config.SportsConfig{BaseURL: ts.URL, APIKey: "key-123"})
	matches, err := client.FixturesByDate(context.Background(), "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "key-123", gotToken)
	assert.Equal(t, "2026-08-31", gotQuery)

	require.Len(t, matches, 1)
	assert.Equal(t, Match{
		League:    "K League 1",
		HomeTeam:  "FC Seoul",
		AwayTeam:  "Ulsan HD",
		HomeScore: 2,
		AwayScore: 1,
		Status:    "FINISHED",
		Kickoff:   "2026-08-31T10:00:00Z",
	}, matches[0])
}

func TestFixturesByDateUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewClient(config.SportsConfig{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.FixturesByDate(context.Background(), "2026-08-31")
	assert.Error(t, err)
}

func TestFixturesByDateBadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	client := NewClient(config.SportsConfig{BaseURL: ts.URL, APIKey: "k"})
	_, err := client.FixturesByDate(context.Background(), "2026-08-31")
	assert.Error(t, err)
}
