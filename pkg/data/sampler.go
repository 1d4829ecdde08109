package data

import (
	"database/sql"
	"errors"
	"math/rand"

	"github.com/citelab/cvet/pkg/trust"
)

// CitationSampler draws citations from the database by row offset,
// so a seeded random source yields a reproducible sequence.
type CitationSampler struct {
	db    *sql.DB
	count int
}

// NewCitationSampler caches the citation count for offset sampling.
func NewCitationSampler(db *sql.DB) (*CitationSampler, error) {
	count, err := CountCitations(db)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("no citations imported, run import first")
	}
	return &CitationSampler{db: db, count: count}, nil
}

// Sample returns a uniformly random citation using the given source.
func (s *CitationSampler) Sample(r *rand.Rand) (*trust.Citation, error) {
	return GetCitationAt(s.db, r.Intn(s.count))
}
