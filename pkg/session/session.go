package session

import (
	"context"
	"time"
)

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Repository keeps the server side of a login. A token is honoured only
// while its session is present and unexpired.
type Repository interface {
	Create(ctx context.Context, userID, sessionID string, ttl time.Duration) (*Session, error)
	IsValid(ctx context.Context, sessionID string) (bool, error)
	Invalidate(ctx context.Context, sessionID string) error
}
