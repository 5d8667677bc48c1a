package authstore

import (
	"context"
	"log/slog"
	"sync"

	"vehicledb/pkg/apiclient"
)

type State int

const (
	Unknown State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the identity of the logged in user. Token is issued by the
// server and never interpreted here.
type Session struct {
	EmailAddress string
	Token        string
}

// API is the part of the request client the store talks to.
type API interface {
	GetSession(ctx context.Context) (*apiclient.Identity, error)
	CreateSession(ctx context.Context, emailAddress, password string) (*apiclient.Identity, error)
	CreateUser(ctx context.Context, emailAddress, password string) (*apiclient.Identity, error)
	DeleteSession(ctx context.Context) error
}

// Store is the only writer of the current session. It does not serialize
// operations; callers should not submit two state changes at once.
type Store struct {
	api    API
	logger *slog.Logger

	mu        sync.RWMutex
	session   *Session
	resolved  bool
	gen       uint64
	listeners map[int]func(State)
	nextID    int
}

func New(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:       api,
		logger:    logger,
		listeners: make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	if s.session != nil {
		return Authenticated
	}
	if !s.resolved {
		return Unknown
	}
	return Anonymous
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Session returns a copy of the current session, if any.
func (s *Store) Session() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// CheckSession re-derives the state from the server. Any failure, including
// "no session", leaves the store Anonymous. A result that arrives after a
// login, register or logout has completed is discarded.
func (s *Store) CheckSession(ctx context.Context) State {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	id, err := s.api.GetSession(ctx)
	if err != nil {
		s.logger.Debug("check session", "error", err)
		return s.setIf(gen, nil)
	}
	return s.setIf(gen, &Session{EmailAddress: id.EmailAddress, Token: id.Token})
}

func (s *Store) Register(ctx context.Context, emailAddress, password string) error {
	id, err := s.api.CreateUser(ctx, emailAddress, password)
	if err != nil {
		return err
	}
	s.set(&Session{EmailAddress: emailAddress, Token: id.Token})
	return nil
}

func (s *Store) Login(ctx context.Context, emailAddress, password string) error {
	id, err := s.api.CreateSession(ctx, emailAddress, password)
	if err != nil {
		return err
	}
	var token string
	if id != nil {
		token = id.Token
	}
	s.set(&Session{EmailAddress: emailAddress, Token: token})
	return nil
}

// Logout clears the local session only once the server confirmed the
// deletion; on failure the session is kept.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.api.DeleteSession(ctx); err != nil {
		return err
	}
	s.set(nil)
	return nil
}

// Subscribe registers fn to be called after every transition.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// WaitResolved blocks until the state is no longer Unknown.
func (s *Store) WaitResolved(ctx context.Context) (State, error) {
	done := make(chan State, 1)
	cancel := s.Subscribe(func(st State) {
		if st != Unknown {
			select {
			case done <- st:
			default:
			}
		}
	})
	defer cancel()

	if st := s.State(); st != Unknown {
		return st, nil
	}

	select {
	case st := <-done:
		return st, nil
	case <-ctx.Done():
		return Unknown, ctx.Err()
	}
}

func (s *Store) set(session *Session) State {
	s.mu.Lock()
	return s.commitLocked(session)
}

// setIf commits session only when no other transition happened since gen.
func (s *Store) setIf(gen uint64, session *Session) State {
	s.mu.Lock()
	if s.gen != gen {
		st := s.stateLocked()
		s.mu.Unlock()
		s.logger.Debug("stale session check dropped", "state", st.String())
		return st
	}
	return s.commitLocked(session)
}

// commitLocked must be called with mu held; it releases it before notifying.
func (s *Store) commitLocked(session *Session) State {
	s.session = session
	s.resolved = true
	s.gen++
	st := s.stateLocked()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("session state", "state", st.String())
	for _, fn := range listeners {
		fn(st)
	}
	return st
}
