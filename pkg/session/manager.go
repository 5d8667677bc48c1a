package session

import (
	"context"
	"database/sql"
	"time"
)

type SQLSessionRepo struct {
	DB *sql.DB
}

func NewSQLSessionRepo(db *sql.DB) *SQLSessionRepo {
	return &SQLSessionRepo{DB: db}
}

func (r *SQLSessionRepo) Create(ctx context.Context, userID, sessionID string, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	s := &Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLSessionRepo) IsValid(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE id = ? AND expires_at > ?
		)
	`, sessionID, time.Now().UTC()).Scan(&exists)
	return exists, err
}

// Invalidate is idempotent; deleting an unknown session is not an error.
func (r *SQLSessionRepo) Invalidate(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

// DeleteExpired removes sessions past their expiry and reports how many.
func (r *SQLSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
