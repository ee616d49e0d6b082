// internal/store/sqlite.go
//
// Durable RecentStore backed by the server's SQLite database.
// The recent_signatures table is an append-only list per key; PushAndTrim
// deletes rows past the newest max after inserting.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

type sqliteRecent struct {
	db *sql.DB
}

// NewSQLiteRecent returns a RecentStore persisted in db.
// Requires the recent_signatures table from sql/001_init.sql.
func NewSQLiteRecent(db *sql.DB) RecentStore {
	return &sqliteRecent{db: db}
}

func (s *sqliteRecent) ReadRange(ctx context.Context, key string, start, stop int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT signature FROM recent_signatures
		 WHERE key=? ORDER BY id DESC LIMIT ? OFFSET ?`,
		key, stop-start+1, start)
	if err != nil {
		return nil, fmt.Errorf("read recent %s: %w", key, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			return nil, err
		}
		out = append(out, sig)
	}
	return out, rows.Err()
}

func (s *sqliteRecent) PushAndTrim(ctx context.Context, key, value string, max int) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO recent_signatures(key, signature) VALUES (?,?)`, key, value); err != nil {
		return fmt.Errorf("push recent %s: %w", key, err)
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM recent_signatures WHERE key=? AND id NOT IN (
		   SELECT id FROM recent_signatures WHERE key=? ORDER BY id DESC LIMIT ?
		 )`, key, key, max)
	if err != nil {
		return fmt.Errorf("trim recent %s: %w", key, err)
	}
	return nil
}

func (s *sqliteRecent) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recent_signatures WHERE key=?`, key)
	return err
}
