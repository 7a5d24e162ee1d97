// Package sqlite provides the default on-disk Store backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
	"github.com/bitblaster/ruotafortuna/internal/storage/sqlite/migrations"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists game data in a single SQLite file.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) LoadUsedPhrases(ctx context.Context) ([]int, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT phrase_id FROM used_phrases ORDER BY phrase_id`)
	if err != nil {
		return nil, fmt.Errorf("query used phrases: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan used phrase: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) SaveUsedPhrases(ctx context.Context, ids []int) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM used_phrases`); err != nil {
		return fmt.Errorf("clear used phrases: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO used_phrases (phrase_id) VALUES (?)`, id); err != nil {
			return fmt.Errorf("insert used phrase %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ListPresets(ctx context.Context) ([]preset.Preset, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT data FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	var out []preset.Preset
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		var p preset.Preset
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("decode preset: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPreset(ctx context.Context, name string) (preset.Preset, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM presets WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return preset.Preset{}, storage.ErrNotFound
	}
	if err != nil {
		return preset.Preset{}, fmt.Errorf("get preset %q: %w", name, err)
	}
	var p preset.Preset
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return preset.Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}

func (s *Store) SavePreset(ctx context.Context, p preset.Preset) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO presets (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.Name, string(data), toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save preset %q: %w", p.Name, err)
	}
	return nil
}

func (s *Store) DeletePreset(ctx context.Context, name string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SaveResult(ctx context.Context, r storage.GameResult) error {
	standings, err := json.Marshal(r.Standings)
	if err != nil {
		return fmt.Errorf("encode standings: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO game_results (id, finished_at, standings) VALUES (?, ?, ?)`,
		r.ID.String(), toMillis(r.FinishedAt), string(standings),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// ListResults returns up to limit results, newest first. limit <= 0 means all.
func (s *Store) ListResults(ctx context.Context, limit int) ([]storage.GameResult, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, finished_at, standings FROM game_results ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []storage.GameResult
	for rows.Next() {
		var (
			id         string
			finishedAt int64
			standings  string
		)
		if err := rows.Scan(&id, &finishedAt, &standings); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r := storage.GameResult{FinishedAt: fromMillis(finishedAt)}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse result id: %w", err)
		}
		var players []engine.Player
		if err := json.Unmarshal([]byte(standings), &players); err != nil {
			return nil, fmt.Errorf("decode standings: %w", err)
		}
		r.Standings = players
		out = append(out, r)
	}
	return out, rows.Err()
}
