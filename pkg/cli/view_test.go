package cli

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/citelab/cvet/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServerDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, data.Init(dbPath))
	db, err := data.GetDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedRun(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	id, err := data.InsertRun(db, 42, 60.0, 2)
	require.NoError(t, err)
	require.NoError(t, data.SaveEpisodes(db, id, []*data.EpisodeRow{
		{Episode: 1, Domain: "harvard.edu", Category: "Academic Research", AgeDays: 50, Score: 99.5, Accepted: 1},
		{Episode: 2, Domain: "worldtruth.biz", Category: "Blog", AgeDays: 700, Score: 3.0, Accepted: 0},
	}))
	return id
}

func TestServer_Home(t *testing.T) {
	db := setupServerDB(t)
	seedRun(t, db)

	srv := httptest.NewServer(makeRouter(db))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_EpisodesAPI(t *testing.T) {
	db := setupServerDB(t)
	seedRun(t, db)

	srv := httptest.NewServer(makeRouter(db))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/data/episodes")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var episodes []*data.EpisodeRow
	require.NoError(t, json.NewDecoder(res.Body).Decode(&episodes))
	require.Len(t, episodes, 2)
	assert.Equal(t, "harvard.edu", episodes[0].Domain)
}

func TestServer_SummaryAPI(t *testing.T) {
	db := setupServerDB(t)
	seedRun(t, db)

	srv := httptest.NewServer(makeRouter(db))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/data/summary")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var s data.RunSummary
	require.NoError(t, json.NewDecoder(res.Body).Decode(&s))
	assert.Equal(t, 2, s.Episodes)
	assert.Equal(t, 1, s.Accepted)
}

func TestServer_DistributionAPI(t *testing.T) {
	db := setupServerDB(t)
	seedRun(t, db)

	srv := httptest.NewServer(makeRouter(db))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/data/distribution")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var d data.ScoreDistribution
	require.NoError(t, json.NewDecoder(res.Body).Decode(&d))
	assert.Len(t, d.Labels, 10)
}

func TestServer_NoRuns(t *testing.T) {
	db := setupServerDB(t)

	srv := httptest.NewServer(makeRouter(db))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/data/summary")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
