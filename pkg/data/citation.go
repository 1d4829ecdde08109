package data

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/citelab/cvet/pkg/trust"
)

const (
	insertCitationSQL = `INSERT INTO citation (
			category,
			url,
			domain,
			age_days,
			trust_description
		)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url, domain) DO UPDATE SET
			category = ?,
			age_days = ?,
			trust_description = ?
	`

	selectCitationCountSQL = `SELECT COUNT(*) FROM citation`

	selectCitationAtSQL = `SELECT
			category,
			url,
			domain,
			age_days,
			trust_description
		FROM citation
		ORDER BY id
		LIMIT 1 OFFSET ?
	`

	queryCitationSQL = `SELECT
			category,
			url,
			domain,
			age_days,
			trust_description
		FROM citation
		WHERE domain LIKE ?
		OR category LIKE ?
		OR url LIKE ?
		ORDER BY domain
		LIMIT ?
	`
)

// SaveCitations upserts the given citations in a single transaction.
func SaveCitations(db *sql.DB, list []*trust.Citation) error {
	if db == nil {
		return errDBNotInitialized
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin citation tx: %w", err)
	}

	stmt, err := tx.Prepare(insertCitationSQL)
	if err != nil {
		rollbackTransaction(tx)
		return fmt.Errorf("failed to prepare citation insert: %w", err)
	}

	for _, c := range list {
		if _, err := stmt.Exec(
			c.Category, c.URL, c.Domain, c.AgeDays, c.TrustDescription,
			c.Category, c.AgeDays, c.TrustDescription,
		); err != nil {
			rollbackTransaction(tx)
			return fmt.Errorf("failed to save citation %s: %w", c.Domain, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit citation tx: %w", err)
	}

	return nil
}

// CountCitations returns the number of stored citations.
func CountCitations(db *sql.DB) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}

	var count int
	if err := db.QueryRow(selectCitationCountSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count citations: %w", err)
	}
	return count, nil
}

// GetCitationAt returns the citation at the given row offset in
// stable insertion order. Used by seeded sampling to make record
// selection reproducible.
func GetCitationAt(db *sql.DB, offset int) (*trust.Citation, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	c := &trust.Citation{}
	err := db.QueryRow(selectCitationAtSQL, offset).Scan(
		&c.Category, &c.URL, &c.Domain, &c.AgeDays, &c.TrustDescription,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no citation at offset %d", offset)
		}
		return nil, fmt.Errorf("failed to get citation at offset %d: %w", offset, err)
	}
	return c, nil
}

// QueryCitations fuzzy-searches citations by domain, category, or URL.
func QueryCitations(db *sql.DB, like string, limit int) ([]*trust.Citation, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	q := "%" + strings.TrimSpace(like) + "%"
	rows, err := db.Query(queryCitationSQL, q, q, q, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query citations: %w", err)
	}
	defer rows.Close()

	list := make([]*trust.Citation, 0)
	for rows.Next() {
		c := &trust.Citation{}
		if err := rows.Scan(&c.Category, &c.URL, &c.Domain, &c.AgeDays, &c.TrustDescription); err != nil {
			return nil, fmt.Errorf("failed to scan citation: %w", err)
		}
		list = append(list, c)
	}

	return list, nil
}

func rollbackTransaction(tx *sql.Tx) {
	_ = tx.Rollback()
}
