package data

import (
	"math/rand"
	"testing"

	"github.com/citelab/cvet/pkg/trust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCitations() []*trust.Citation {
	return []*trust.Citation{
		{
			Category:         "Academic Research",
			URL:              "https://harvard.edu/study",
			Domain:           "harvard.edu",
			AgeDays:          50,
			TrustDescription: "Very high, leading university",
		},
		{
			Category:         "News Outlet",
			URL:              "https://example.com/news",
			Domain:           "example.com",
			AgeDays:          10,
			TrustDescription: "Mainstream coverage",
		},
		{
			Category:         "Blog",
			URL:              "http://worldtruth.biz/post",
			Domain:           "worldtruth.biz",
			AgeDays:          700,
			TrustDescription: "Biased hoax content",
		},
	}
}

func TestSaveCitations(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCitations(db, testCitations()))

	count, err := CountCitations(db)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSaveCitations_UpsertNoDuplicates(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCitations(db, testCitations()))
	require.NoError(t, SaveCitations(db, testCitations()))

	count, err := CountCitations(db)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSaveCitations_NilDB(t *testing.T) {
	assert.Error(t, SaveCitations(nil, testCitations()))
}

func TestGetCitationAt(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCitations(db, testCitations()))

	c, err := GetCitationAt(db, 0)
	require.NoError(t, err)
	assert.Equal(t, "harvard.edu", c.Domain)

	c, err = GetCitationAt(db, 2)
	require.NoError(t, err)
	assert.Equal(t, "worldtruth.biz", c.Domain)
}

func TestGetCitationAt_OutOfRange(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCitations(db, testCitations()))

	_, err := GetCitationAt(db, 10)
	assert.Error(t, err)
}

func TestQueryCitations(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCitations(db, testCitations()))

	list, err := QueryCitations(db, "truth", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "worldtruth.biz", list[0].Domain)

	list, err = QueryCitations(db, "nomatch-zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCitationSampler_Deterministic(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveCitations(db, testCitations()))

	s, err := NewCitationSampler(db)
	require.NoError(t, err)

	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		ca, err := s.Sample(a)
		require.NoError(t, err)
		cb, err := s.Sample(b)
		require.NoError(t, err)
		assert.Equal(t, ca.Domain, cb.Domain)
	}
}

func TestCitationSampler_EmptyDB(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewCitationSampler(db)
	assert.Error(t, err)
}
