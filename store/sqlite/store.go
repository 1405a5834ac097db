// Package sqlite provides a SQLite-backed user and stats store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ludo/store"
	"ludo/store/sqlite/migrations"
)

// Store persists the device user and their stats in a SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection serialises writers, which is all a device-local
	// store needs.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) GetOrCreateUser(ctx context.Context) (store.User, error) {
	u, err := s.firstUser(ctx)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.User{}, err
	}

	u = store.NewAnonymousUser(s.now())
	// Only milliseconds are stored, so hand back what later reads will see.
	u.CreatedAt = fromMillis(toMillis(u.CreatedAt))
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)`,
		u.ID, u.Username, toMillis(u.CreatedAt),
	)
	if err != nil {
		return store.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) firstUser(ctx context.Context) (store.User, error) {
	var u store.User
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users ORDER BY created_at, id LIMIT 1`,
	).Scan(&u.ID, &u.Username, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, store.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func (s *Store) RenameUser(ctx context.Context, userID, username string) (store.User, error) {
	name, err := store.ValidateUsername(username)
	if err != nil {
		return store.User{}, err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE users SET username = ? WHERE id = ?`, name, userID)
	if err != nil {
		return store.User{}, fmt.Errorf("rename user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.User{}, fmt.Errorf("rename user: %w", err)
	}
	if n == 0 {
		return store.User{}, store.ErrNotFound
	}

	var u store.User
	var createdAt int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE id = ?`, userID,
	).Scan(&u.ID, &u.Username, &createdAt)
	if err != nil {
		return store.User{}, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func (s *Store) GetStats(ctx context.Context, userID string) (store.Stats, error) {
	return getStats(ctx, s.db, userID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getStats(ctx context.Context, q queryRower, userID string) (store.Stats, error) {
	var st store.Stats
	err := q.QueryRowContext(ctx,
		`SELECT games_played, wins, losses, total_tokens_home, total_captures
		   FROM stats WHERE user_id = ?`, userID,
	).Scan(&st.GamesPlayed, &st.Wins, &st.Losses, &st.TotalTokensHome, &st.TotalCaptures)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Stats{}, nil
	}
	if err != nil {
		return store.Stats{}, fmt.Errorf("select stats: %w", err)
	}
	return st, nil
}

func (s *Store) RecordResult(ctx context.Context, userID string, result store.Result) (store.Stats, error) {
	if strings.TrimSpace(userID) == "" {
		return store.Stats{}, fmt.Errorf("user id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Stats{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getStats(ctx, tx, userID)
	if err != nil {
		return store.Stats{}, err
	}
	updated := current.Apply(result)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stats (user_id, games_played, wins, losses, total_tokens_home, total_captures)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   games_played = excluded.games_played,
		   wins = excluded.wins,
		   losses = excluded.losses,
		   total_tokens_home = excluded.total_tokens_home,
		   total_captures = excluded.total_captures`,
		userID, updated.GamesPlayed, updated.Wins, updated.Losses, updated.TotalTokensHome, updated.TotalCaptures,
	)
	if err != nil {
		return store.Stats{}, fmt.Errorf("upsert stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return store.Stats{}, fmt.Errorf("commit stats: %w", err)
	}
	return updated, nil
}
