package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEpisodes() []*EpisodeRow {
	return []*EpisodeRow{
		{Episode: 1, Domain: "harvard.edu", Category: "Academic Research", AgeDays: 50, Score: 99.5, Accepted: 1},
		{Episode: 2, Domain: "example.com", Category: "News Outlet", AgeDays: 10, Score: 94.9, Accepted: 1},
		{Episode: 3, Domain: "worldtruth.biz", Category: "Blog", AgeDays: 700, Score: 3.0, Accepted: 0},
	}
}

func TestInsertRun(t *testing.T) {
	db := setupTestDB(t)

	id, err := InsertRun(db, 42, 60.0, 100)
	require.NoError(t, err)
	assert.Positive(t, id)

	run, err := GetLatestRun(db)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, int64(42), run.Seed)
	assert.InDelta(t, 60.0, run.Threshold, 0.0001)
	assert.Equal(t, 100, run.Episodes)
}

func TestInsertRun_NilDB(t *testing.T) {
	_, err := InsertRun(nil, 1, 60.0, 10)
	assert.Error(t, err)
}

func TestGetLatestRun_Empty(t *testing.T) {
	db := setupTestDB(t)
	_, err := GetLatestRun(db)
	assert.Error(t, err)
}

func TestSaveAndGetEpisodes(t *testing.T) {
	db := setupTestDB(t)

	id, err := InsertRun(db, 42, 60.0, 3)
	require.NoError(t, err)
	require.NoError(t, SaveEpisodes(db, id, testEpisodes()))

	list, err := GetEpisodes(db, id, 100)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].Episode)
	assert.Equal(t, "harvard.edu", list[0].Domain)
	assert.InDelta(t, 99.5, list[0].Score, 0.0001)
	assert.Equal(t, 0, list[2].Accepted)
}

func TestSaveEpisodes_NilDB(t *testing.T) {
	assert.Error(t, SaveEpisodes(nil, 1, testEpisodes()))
}

func TestGetRunSummary(t *testing.T) {
	db := setupTestDB(t)

	id, err := InsertRun(db, 42, 60.0, 3)
	require.NoError(t, err)
	require.NoError(t, SaveEpisodes(db, id, testEpisodes()))

	s, err := GetRunSummary(db, id)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Episodes)
	assert.Equal(t, 2, s.Accepted)
	assert.Equal(t, 1, s.Rejected)
	assert.InDelta(t, (99.5+94.9+3.0)/3, s.AvgScore, 0.0001)
	assert.InDelta(t, 3.0, s.MinScore, 0.0001)
	assert.InDelta(t, 99.5, s.MaxScore, 0.0001)
}

func TestGetScoreDistribution(t *testing.T) {
	db := setupTestDB(t)

	id, err := InsertRun(db, 42, 60.0, 3)
	require.NoError(t, err)
	require.NoError(t, SaveEpisodes(db, id, testEpisodes()))

	d, err := GetScoreDistribution(db, id)
	require.NoError(t, err)
	require.Len(t, d.Labels, 10)
	require.Len(t, d.Data, 10)

	assert.Equal(t, "0-9", d.Labels[0])
	assert.Equal(t, "90-100", d.Labels[9])
	assert.Equal(t, 1, d.Data[0]) // 3.0
	assert.Equal(t, 2, d.Data[9]) // 99.5, 94.9
}

func TestGetScoreDistribution_EmptyRun(t *testing.T) {
	db := setupTestDB(t)

	id, err := InsertRun(db, 1, 60.0, 0)
	require.NoError(t, err)

	d, err := GetScoreDistribution(db, id)
	require.NoError(t, err)
	for _, c := range d.Data {
		assert.Zero(t, c)
	}
}
