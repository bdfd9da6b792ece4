package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// InsertCover inserts or gets an existing cover
func (d *DB) InsertCover(name, source string, width, height int) (int64, error) {
	var id int64
	err := d.db.QueryRow(
		"SELECT id FROM covers WHERE name = ? AND width = ? AND height = ?",
		name, width, height,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to query cover: %w", err)
	}

	result, err := d.db.Exec(
		"INSERT INTO covers (name, source, width, height) VALUES (?, ?, ?, ?)",
		name, source, width, height,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cover: %w", err)
	}
	return result.LastInsertId()
}

// ListCovers returns all covers ordered by id
func (d *DB) ListCovers() ([]*Cover, error) {
	rows, err := d.db.Query("SELECT id, name, source, width, height FROM covers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query covers: %w", err)
	}
	defer rows.Close()

	var covers []*Cover
	for rows.Next() {
		var c Cover
		if err := rows.Scan(&c.ID, &c.Name, &c.Source, &c.Width, &c.Height); err != nil {
			return nil, fmt.Errorf("failed to scan cover: %w", err)
		}
		covers = append(covers, &c)
	}
	return covers, rows.Err()
}

// InsertResults stores results in one transaction. A result for an existing
// (cover, channel, strategy, rate) replaces the old one.
func (d *DB) InsertResults(results []*Result) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO results (
			cover_id, channel, strategy,
			target_rate, payload_bytes, embedded_rate, recovered,
			groups_total, r_m, s_m, r_neg_m, s_neg_m, smoothness, verdict, estimated_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		res, err := stmt.Exec(
			r.CoverID, r.Channel, r.Strategy,
			r.TargetRate, r.PayloadBytes, r.EmbeddedRate, r.Recovered,
			r.Groups, r.RM, r.SM, r.RNegM, r.SNegM, r.Smoothness, r.Verdict, r.EstimatedRate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
		if r.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountResults returns the number of stored results
func (d *DB) CountResults() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

// RateCurve averages the RS percentages per target rate for one channel and strategy
func (d *DB) RateCurve(channel, strategy string) ([]*CurvePoint, error) {
	rows, err := d.db.Query(`
		SELECT
			target_rate,
			COUNT(*),
			AVG(r_m),
			AVG(s_m),
			AVG(r_neg_m),
			AVG(s_neg_m),
			COALESCE(AVG(estimated_rate), 0),
			AVG(CASE WHEN recovered THEN 1.0 ELSE 0.0 END)
		FROM results
		WHERE channel = ? AND strategy = ?
		GROUP BY target_rate
		ORDER BY target_rate`, channel, strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate curve: %w", err)
	}
	defer rows.Close()

	var points []*CurvePoint
	for rows.Next() {
		var p CurvePoint
		if err := rows.Scan(
			&p.TargetRate, &p.Samples,
			&p.AvgRM, &p.AvgSM, &p.AvgRNegM, &p.AvgSNegM,
			&p.AvgEstimatedRate, &p.RecoveredRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan curve point: %w", err)
		}
		points = append(points, &p)
	}
	return points, rows.Err()
}

// GetVerdictStats counts verdicts per target rate over all results
func (d *DB) GetVerdictStats() ([]*VerdictStats, error) {
	rows, err := d.db.Query(`
		SELECT target_rate, verdict, COUNT(*)
		FROM results
		GROUP BY target_rate, verdict
		ORDER BY target_rate, verdict`)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdict stats: %w", err)
	}
	defer rows.Close()

	var stats []*VerdictStats
	for rows.Next() {
		var s VerdictStats
		if err := rows.Scan(&s.TargetRate, &s.Verdict, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan verdict stats: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// ExecuteRawQuery executes a raw SQL query (for advanced use cases)
func (d *DB) ExecuteRawQuery(query string, args ...any) (*sql.Rows, error) {
	return d.db.Query(query, args...)
}
