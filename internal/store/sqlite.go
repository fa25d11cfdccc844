package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"loops-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout covers the CLI running next to the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS loops (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category_id TEXT,
			activity_count INTEGER NOT NULL,
			json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_loops_updated ON loops(updated_at_unixms);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, ts_unixms);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1')`)
	return err
}

// Init creates the store directory and database.
func (s Store) Init(ctx context.Context) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	return db.Close()
}

// ListLoops returns every stored loop, most recently updated first.
func (s Store) ListLoops(ctx context.Context) ([]model.Loop, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out, err := readJSONRows[model.Loop](ctx, db, `SELECT json FROM loops ORDER BY updated_at_unixms DESC, id`)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Loop{}
	}
	return out, nil
}

func (s Store) GetLoop(ctx context.Context, id string) (*model.Loop, error) {
	id = strings.TrimSpace(id)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var js string
	err = db.QueryRowContext(ctx, `SELECT json FROM loops WHERE id = ?`, id).Scan(&js)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError{Kind: "loop", ID: id}
	}
	if err != nil {
		return nil, err
	}
	var l model.Loop
	if err := json.Unmarshal([]byte(js), &l); err != nil {
		return nil, fmt.Errorf("decode loop %s: %w", id, err)
	}
	return &l, nil
}

// SaveLoop inserts or replaces l. An empty ID gets a fresh loop id; timestamps are set here.
// The stored value is returned.
func (s Store) SaveLoop(ctx context.Context, l model.Loop) (model.Loop, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Loop{}, err
	}
	defer db.Close()

	now := time.Now().UTC()
	typ := "loop.update"
	if strings.TrimSpace(l.ID) == "" {
		id, err := NewLoopID()
		if err != nil {
			return model.Loop{}, err
		}
		l.ID = id
		l.CreatedAt = now
		typ = "loop.create"
	} else {
		var createdMs int64
		err := db.QueryRowContext(ctx, `SELECT created_at_unixms FROM loops WHERE id = ?`, l.ID).Scan(&createdMs)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if l.CreatedAt.IsZero() {
				l.CreatedAt = now
			}
			typ = "loop.create"
		case err != nil:
			return model.Loop{}, err
		default:
			l.CreatedAt = time.UnixMilli(createdMs).UTC()
		}
	}
	l.UpdatedAt = now
	l.Settings = l.Settings.Normalize()
	if l.Activities == nil {
		l.Activities = []model.Activity{}
	}

	raw, err := json.Marshal(l)
	if err != nil {
		return model.Loop{}, err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Loop{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var categoryID any
	if l.CategoryID != nil {
		categoryID = *l.CategoryID
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO loops(id, title, category_id, activity_count, json, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, categoryID, len(l.Activities), string(raw), l.CreatedAt.UnixMilli(), l.UpdatedAt.UnixMilli()); err != nil {
		return model.Loop{}, err
	}
	if err := appendEventTx(ctx, tx, typ, l.ID, map[string]any{"title": l.Title, "activities": len(l.Activities)}); err != nil {
		return model.Loop{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Loop{}, err
	}
	s.log().Info("loop saved", "id", l.ID, "event", typ, "activities", len(l.Activities))
	return l, nil
}

func (s Store) DeleteLoop(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM loops WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFoundError{Kind: "loop", ID: id}
	}
	if err := appendEventTx(ctx, tx, "loop.delete", id, map[string]any{}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log().Info("loop deleted", "id", id)
	return nil
}

func appendEventTx(ctx context.Context, tx *sql.Tx, typ, entityID string, payload any) error {
	id, err := newEventID()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO events(event_id, ts_unixms, type, entity_id, payload) VALUES(?, ?, ?, ?, ?)`,
		id, time.Now().UTC().UnixMilli(), typ, entityID, string(raw))
	return err
}

// ReadEvents returns up to limit events, newest first. limit <= 0 means all.
func (s Store) ReadEvents(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, ts_unixms, type, entity_id, payload FROM events ORDER BY ts_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var (
			ev      model.Event
			tsMs    int64
			payload string
		)
		if err := rows.Scan(&ev.ID, &tsMs, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		var p any
		if err := json.Unmarshal([]byte(payload), &p); err == nil {
			ev.Payload = p
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
