package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/unishop/pkg/model"

	_ "modernc.org/sqlite"
)

// Keys for the two durable records.
const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the session_state table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) SaveSession(ctx context.Context, token string, user *model.UserProfile) error {
	if token == "" || user == nil {
		return fmt.Errorf("%w: token and user must both be present", model.ErrValidation)
	}
	s.logger.Debug("sql", "op", "save_session", "user_id", user.ID)

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, rec := range []struct{ key, value string }{
		{keyToken, token},
		{keyUser, string(userJSON)},
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			rec.key, rec.value, now,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", rec.key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", model.ErrValidation)
	}
	s.logger.Debug("sql", "op", "save_token")
	return s.replaceExisting(ctx, keyToken, token)
}

func (s *SQLiteStore) SaveUser(ctx context.Context, user *model.UserProfile) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", model.ErrValidation)
	}
	s.logger.Debug("sql", "op", "save_user", "user_id", user.ID)

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.replaceExisting(ctx, keyUser, string(userJSON))
}

// replaceExisting updates one half of the pair, refusing to create it: a
// lone token or lone profile would break the pair invariant.
func (s *SQLiteStore) replaceExisting(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE session_state SET value = ?, updated_at = ? WHERE key = ?`,
		value, now, key,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNoSession
	}
	return nil
}

func (s *SQLiteStore) LoadSession(ctx context.Context) (string, *model.UserProfile, error) {
	s.logger.Debug("sql", "op", "load_session")

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_state WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return "", nil, fmt.Errorf("select session_state: %w", err)
	}
	defer rows.Close()

	var token, userJSON string
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return "", nil, err
		}
		switch key {
		case keyToken:
			token = value
		case keyUser:
			userJSON = value
		}
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}

	if token == "" || userJSON == "" {
		// A half-written pair is treated as absent; the caller re-authenticates.
		return "", nil, nil
	}

	var user model.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return "", nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return token, &user, nil
}

func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	s.logger.Debug("sql", "op", "clear_session")
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("delete session_state: %w", err)
	}
	return nil
}
