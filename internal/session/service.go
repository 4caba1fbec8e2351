// Package session holds the authenticated user for one terminal run.
// The session is hydrated explicitly at startup from a pluggable store
// and written back on login/logout; nothing is synchronized implicitly.
package session

import (
	"context"
	"fmt"

	"github.com/bakdaulet/kassa/internal/api"
)

// Session is the in-memory auth state.
type Session struct {
	User  api.User `json:"user"`
	Token string   `json:"token"`
}

// Store persists a session across terminal restarts.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=session
type Authenticator interface {
	Login(ctx context.Context, login, password string) (*api.LoginResponse, error)
}

type Service struct {
	store   Store
	auth    Authenticator
	current *Session
}

func NewService(store Store, auth Authenticator) *Service {
	return &Service{store: store, auth: auth}
}

// Hydrate loads a previously saved session. An expired token is treated
// as no session at all and cleared from the store.
func (s *Service) Hydrate() (*Session, error) {
	saved, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if saved == nil {
		return nil, nil
	}

	if TokenExpired(saved.Token) {
		_ = s.store.Clear()
		return nil, nil
	}

	s.current = saved

	return saved, nil
}

// Login authenticates against the backend and persists the new session.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	resp, err := s.auth.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}

	sess := &Session{User: resp.User, Token: resp.Token}
	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.current = sess

	return sess, nil
}

// Logout drops the in-memory session and the persisted copy.
func (s *Service) Logout() error {
	s.current = nil

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

// Current returns the active session, or nil when logged out.
func (s *Service) Current() *Session {
	return s.current
}

// IsAdmin reports whether the active session has the admin role.
func (s *Service) IsAdmin() bool {
	return s.current != nil && s.current.User.Role == api.RoleAdmin
}
