// Package postgres provides a Store backed by PostgreSQL through pgxpool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
	"github.com/bitblaster/ruotafortuna/internal/storage/postgres/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableUsed    = "used_phrases"
	tablePresets = "presets"
	tableResults = "game_results"

	colPhraseID   = "phrase_id"
	colName       = "name"
	colData       = "data"
	colUpdatedAt  = "updated_at"
	colID         = "id"
	colFinishedAt = "finished_at"
	colStandings  = "standings"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store persists game data in PostgreSQL.
type Store struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
	tx     *manager.Manager
}

var _ storage.Store = (*Store)(nil)

// Open connects to dsn, verifies the connection and creates the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("pg dsn not found")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pg: %w", err)
	}
	if _, err := pool.Exec(ctx, migrations.Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	m, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create tx manager: %w", err)
	}
	return &Store{dbc: pool, getter: trmpgx.DefaultCtxGetter, tx: m}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s != nil && s.dbc != nil {
		s.dbc.Close()
	}
	return nil
}

// conn returns the transaction bound to ctx, or the pool.
func (s *Store) conn(ctx context.Context) trmpgx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.dbc)
}

func (s *Store) LoadUsedPhrases(ctx context.Context) ([]int, error) {
	sqlStr, args, err := psql.Select(colPhraseID).From(tableUsed).OrderBy(colPhraseID).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query used phrases: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scan used phrases: %w", err)
	}
	return ids, nil
}

func (s *Store) SaveUsedPhrases(ctx context.Context, ids []int) error {
	return s.tx.Do(ctx, func(txCtx context.Context) error {
		sqlStr, args, err := psql.Delete(tableUsed).ToSql()
		if err != nil {
			return err
		}
		if _, err := s.conn(txCtx).Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("clear used phrases: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		q := psql.Insert(tableUsed).Columns(colPhraseID)
		for _, id := range ids {
			q = q.Values(id)
		}
		sqlStr, args, err = q.Suffix("ON CONFLICT DO NOTHING").ToSql()
		if err != nil {
			return err
		}
		if _, err := s.conn(txCtx).Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert used phrases: %w", err)
		}
		return nil
	})
}

func (s *Store) ListPresets(ctx context.Context) ([]preset.Preset, error) {
	sqlStr, args, err := psql.Select(colData).From(tablePresets).OrderBy(colName).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scan presets: %w", err)
	}
	out := make([]preset.Preset, 0, len(raw))
	for _, data := range raw {
		var p preset.Preset
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode preset: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) GetPreset(ctx context.Context, name string) (preset.Preset, error) {
	sqlStr, args, err := psql.Select(colData).From(tablePresets).Where(sq.Eq{colName: name}).ToSql()
	if err != nil {
		return preset.Preset{}, err
	}
	var data []byte
	err = s.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return preset.Preset{}, storage.ErrNotFound
	}
	if err != nil {
		return preset.Preset{}, fmt.Errorf("get preset %q: %w", name, err)
	}
	var p preset.Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return preset.Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}

func (s *Store) SavePreset(ctx context.Context, p preset.Preset) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	sqlStr, args, err := psql.Insert(tablePresets).
		Columns(colName, colData, colUpdatedAt).
		Values(p.Name, data, sq.Expr("now()")).
		Suffix("ON CONFLICT (" + colName + ") DO UPDATE SET " +
			colData + " = EXCLUDED." + colData + ", " + colUpdatedAt + " = EXCLUDED." + colUpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.conn(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("save preset %q: %w", p.Name, err)
	}
	return nil
}

func (s *Store) DeletePreset(ctx context.Context, name string) error {
	sqlStr, args, err := psql.Delete(tablePresets).Where(sq.Eq{colName: name}).ToSql()
	if err != nil {
		return err
	}
	tag, err := s.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SaveResult(ctx context.Context, r storage.GameResult) error {
	standings, err := json.Marshal(r.Standings)
	if err != nil {
		return fmt.Errorf("encode standings: %w", err)
	}
	sqlStr, args, err := psql.Insert(tableResults).
		Columns(colID, colFinishedAt, colStandings).
		Values(r.ID.String(), r.FinishedAt.UTC(), standings).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.conn(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// ListResults returns up to limit results, newest first. limit <= 0 means all.
func (s *Store) ListResults(ctx context.Context, limit int) ([]storage.GameResult, error) {
	q := psql.Select(colID, colFinishedAt, colStandings).From(tableResults).OrderBy(colFinishedAt + " DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []storage.GameResult
	for rows.Next() {
		var (
			id        string
			r         storage.GameResult
			standings []byte
		)
		if err := rows.Scan(&id, &r.FinishedAt, &standings); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse result id: %w", err)
		}
		var players []engine.Player
		if err := json.Unmarshal(standings, &players); err != nil {
			return nil, fmt.Errorf("decode standings: %w", err)
		}
		r.Standings = players
		out = append(out, r)
	}
	return out, rows.Err()
}
