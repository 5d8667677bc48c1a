package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"vehicledb/pkg/generator"
	"vehicledb/pkg/session"
)

type ServiceInterface interface {
	Register(ctx context.Context, emailAddress, password string) (*User, *session.Session, error)
	Login(ctx context.Context, emailAddress, password string) (*User, *session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Get(ctx context.Context, id string) (*User, error)
}

type Service struct {
	Repo       Repository
	Session    session.Repository
	SessionTTL time.Duration
}

func NewService(repo Repository, sessions session.Repository, ttl time.Duration) *Service {
	return &Service{Repo: repo, Session: sessions, SessionTTL: ttl}
}

// Register creates the user and opens a session for it.
func (s *Service) Register(ctx context.Context, emailAddress, password string) (*User, *session.Session, error) {
	exist, err := s.Repo.FindByEmailAddress(ctx, emailAddress)
	if exist != nil && err == nil {
		return nil, nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password error: %w", err)
	}

	userID, err := generator.NewID()
	if err != nil {
		return nil, nil, fmt.Errorf("UserID gen error: %w", err)
	}

	user := &User{
		ID:           userID,
		EmailAddress: emailAddress,
		PasswordHash: string(hashedPassword),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	sess, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login does not tell an unknown address apart from a wrong password.
func (s *Service) Login(ctx context.Context, emailAddress, password string) (*User, *session.Session, error) {
	user, err := s.Repo.FindByEmailAddress(ctx, emailAddress)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.Session.Invalidate(ctx, sessionID)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *Service) openSession(ctx context.Context, userID string) (*session.Session, error) {
	sessionID, err := generator.NewID()
	if err != nil {
		return nil, fmt.Errorf("SessionID gen error: %w", err)
	}
	sess, err := s.Session.Create(ctx, userID, sessionID, s.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}
