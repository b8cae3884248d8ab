package db

import (
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"wcbustats/internal/players"
)

// LoadRoster reads every roster row in import order.
func (d *DB) LoadRoster() ([]players.Record, error) {
	rows, err := d.conn.Query(`
		SELECT team_name, division, first_name, goals, assists
		FROM roster_players
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	var records []players.Record
	for rows.Next() {
		var r players.Record
		if err := rows.Scan(&r.TeamName, &r.Division, &r.FirstName, &r.Goals, &r.Assists); err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster: %w", err)
	}
	return records, nil
}

// ReplaceRoster swaps the stored roster for records in a single transaction,
// keeping their order.
func (d *DB) ReplaceRoster(records []players.Record) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`TRUNCATE roster_players RESTART IDENTITY`); err != nil {
		return fmt.Errorf("clearing roster: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn("roster_players",
		"team_name", "division", "first_name", "goals", "assists"))
	if err != nil {
		return fmt.Errorf("preparing copy: %w", err)
	}

	for _, r := range records {
		if _, err := stmt.Exec(r.TeamName, r.Division, r.FirstName, r.Goals, r.Assists); err != nil {
			stmt.Close()
			return fmt.Errorf("copying roster row: %w", err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("flushing copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("closing copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing roster: %w", err)
	}
	d.logger.Info("roster replaced", zap.Int("rows", len(records)))
	return nil
}
