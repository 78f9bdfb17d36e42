package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"starline-salvage/internal/shared/database"
)

// SQLStore persists sessions as JSON snapshots in the game_sessions table.
// Update holds a row lock (or SQLite's single connection) for the whole
// read-modify-write, which serializes actions on one session across
// processes.
type SQLStore struct {
	db     *database.DB
	now    Clock
	logger *slog.Logger
}

func NewSQLStore(db *database.DB, now Clock, logger *slog.Logger) *SQLStore {
	logger.Debug("Initializing SQL session store", "dialect", db.Dialect)

	return &SQLStore{
		db:     db,
		now:    clockOrNow(now),
		logger: logger,
	}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func (s *SQLStore) Create(ctx context.Context, sess *Session) error {
	logger := s.logger.With("component", "session_store", "operation", "create", "session_id", sess.ID)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT EXISTS(SELECT 1 FROM game_sessions WHERE id = $1)`),
		sess.ID,
	).Scan(&exists)
	if err != nil {
		logger.Error("Failed to check for existing session", "error", err)
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists {
		return ErrExists
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	query := `
		INSERT INTO game_sessions (id, state, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, s.db.Rebind(query),
		sess.ID, string(data), string(sess.Status), toMillis(sess.CreatedAt), toMillis(sess.UpdatedAt))
	if err != nil {
		logger.Error("Failed to insert session", "error", err)
		return fmt.Errorf("failed to insert session: %w", err)
	}

	logger.Debug("Session inserted")
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Session, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT state FROM game_sessions WHERE id = $1`),
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return decodeSession(data)
}

func (s *SQLStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	logger := s.logger.With("component", "session_store", "operation", "update", "session_id", id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	var data []byte
	err = tx.QueryRowContext(ctx,
		s.db.Rebind(`SELECT state FROM game_sessions WHERE id = $1`+s.db.LockClause()),
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error("Failed to lock session row", "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	current, err := decodeSession(data)
	if err != nil {
		return nil, err
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		if errors.Is(err, ErrNoChange) {
			return current, nil
		}
		return nil, err
	}
	working.UpdatedAt = s.now()

	encoded, err := json.Marshal(working)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	query := `UPDATE game_sessions SET state = $1, status = $2, updated_at = $3 WHERE id = $4`
	if _, err := tx.ExecContext(ctx, s.db.Rebind(query),
		string(encoded), string(working.Status), toMillis(working.UpdatedAt), id); err != nil {
		logger.Error("Failed to write session", "error", err)
		return nil, fmt.Errorf("failed to write session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit session update", "error", err)
		return nil, fmt.Errorf("failed to commit session update: %w", err)
	}

	return working, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM game_sessions WHERE id = $1`), id)
	if err != nil {
		s.logger.Error("Failed to delete session", "session_id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) EvictIdle(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM game_sessions WHERE updated_at < $1`),
		toMillis(cutoff),
	)
	if err != nil {
		s.logger.Error("Failed to evict idle sessions", "error", err)
		return 0, fmt.Errorf("failed to evict idle sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func decodeSession(data []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}
