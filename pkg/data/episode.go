package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	insertRunSQL = `INSERT INTO run (started_at, seed, threshold, episodes)
		VALUES (?, ?, ?, ?)
	`

	insertEpisodeSQL = `INSERT INTO episode (
			run_id,
			episode,
			url,
			domain,
			category,
			age_days,
			score,
			accepted
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectLatestRunSQL = `SELECT id, started_at, seed, threshold, episodes
		FROM run
		ORDER BY id DESC
		LIMIT 1
	`

	selectEpisodesSQL = `SELECT
			episode,
			url,
			domain,
			category,
			age_days,
			score,
			accepted
		FROM episode
		WHERE run_id = ?
		ORDER BY episode
		LIMIT ?
	`

	selectRunSummarySQL = `SELECT
			COUNT(*),
			COALESCE(SUM(accepted), 0),
			COALESCE(AVG(score), 0),
			COALESCE(MIN(score), 0),
			COALESCE(MAX(score), 0)
		FROM episode
		WHERE run_id = ?
	`

	selectScoreDistributionSQL = `SELECT
			CAST(MIN(score / 10, 9) AS INTEGER) AS bucket,
			COUNT(*)
		FROM episode
		WHERE run_id = ?
		GROUP BY bucket
		ORDER BY bucket
	`
)

// Run identifies one persisted simulation run.
type Run struct {
	ID        int64   `json:"id" yaml:"id"`
	StartedAt string  `json:"started_at" yaml:"startedAt"`
	Seed      int64   `json:"seed" yaml:"seed"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Episodes  int     `json:"episodes" yaml:"episodes"`
}

// EpisodeRow is one persisted (record, score, decision) tuple.
type EpisodeRow struct {
	Episode  int     `json:"episode" yaml:"episode"`
	URL      string  `json:"url,omitempty" yaml:"url,omitempty"`
	Domain   string  `json:"domain" yaml:"domain"`
	Category string  `json:"category" yaml:"category"`
	AgeDays  int     `json:"age_days" yaml:"ageDays"`
	Score    float64 `json:"score" yaml:"score"`
	Accepted int     `json:"accepted" yaml:"accepted"`
}

// RunSummary aggregates the decisions of a single run.
type RunSummary struct {
	RunID    int64   `json:"run_id" yaml:"runId"`
	Episodes int     `json:"episodes" yaml:"episodes"`
	Accepted int     `json:"accepted" yaml:"accepted"`
	Rejected int     `json:"rejected" yaml:"rejected"`
	AvgScore float64 `json:"avg_score" yaml:"avgScore"`
	MinScore float64 `json:"min_score" yaml:"minScore"`
	MaxScore float64 `json:"max_score" yaml:"maxScore"`
}

// ScoreDistribution is chart data: one bucket per 10 score points.
type ScoreDistribution struct {
	Labels []string `json:"labels" yaml:"labels"`
	Data   []int    `json:"data" yaml:"data"`
}

// InsertRun records a new simulation run and returns its ID.
func InsertRun(db *sql.DB, seed int64, threshold float64, episodes int) (int64, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.Exec(insertRunSQL, now, seed, threshold, episodes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// SaveEpisodes persists the episode rows of a run in one transaction.
func SaveEpisodes(db *sql.DB, runID int64, episodes []*EpisodeRow) error {
	if db == nil {
		return errDBNotInitialized
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin episode tx: %w", err)
	}

	stmt, err := tx.Prepare(insertEpisodeSQL)
	if err != nil {
		rollbackTransaction(tx)
		return fmt.Errorf("failed to prepare episode insert: %w", err)
	}

	for _, e := range episodes {
		if _, err := stmt.Exec(
			runID, e.Episode, e.URL, e.Domain, e.Category, e.AgeDays, e.Score, e.Accepted,
		); err != nil {
			rollbackTransaction(tx)
			return fmt.Errorf("failed to save episode %d: %w", e.Episode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit episode tx: %w", err)
	}

	return nil
}

// GetLatestRun returns the most recent run, or an error when none exist.
func GetLatestRun(db *sql.DB) (*Run, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	r := &Run{}
	err := db.QueryRow(selectLatestRunSQL).Scan(&r.ID, &r.StartedAt, &r.Seed, &r.Threshold, &r.Episodes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("no simulation runs recorded")
		}
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return r, nil
}

// GetEpisodes returns the episode rows of a run in episode order.
func GetEpisodes(db *sql.DB, runID int64, limit int) ([]*EpisodeRow, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectEpisodesSQL, runID, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	list := make([]*EpisodeRow, 0)
	for rows.Next() {
		e := &EpisodeRow{}
		if err := rows.Scan(&e.Episode, &e.URL, &e.Domain, &e.Category, &e.AgeDays, &e.Score, &e.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		list = append(list, e)
	}

	return list, nil
}

// GetRunSummary aggregates a run's episodes.
func GetRunSummary(db *sql.DB, runID int64) (*RunSummary, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	s := &RunSummary{RunID: runID}
	err := db.QueryRow(selectRunSummarySQL, runID).Scan(
		&s.Episodes, &s.Accepted, &s.AvgScore, &s.MinScore, &s.MaxScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run summary: %w", err)
	}
	s.Rejected = s.Episodes - s.Accepted
	return s, nil
}

// GetScoreDistribution buckets a run's scores into ten-point bands.
func GetScoreDistribution(db *sql.DB, runID int64) (*ScoreDistribution, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectScoreDistributionSQL, runID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query score distribution: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var bucket, count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		counts[bucket] = count
	}

	d := &ScoreDistribution{
		Labels: make([]string, 0, 10),
		Data:   make([]int, 0, 10),
	}
	for b := 0; b < 10; b++ {
		hi := b*10 + 9
		if b == 9 {
			hi = 100
		}
		d.Labels = append(d.Labels, fmt.Sprintf("%d-%d", b*10, hi))
		d.Data = append(d.Data, counts[b])
	}

	return d, nil
}
