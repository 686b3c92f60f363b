package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"queencare-storefront/internal/domain"
)

// ErrNoUser is returned when the backend accepts a login or signup but sends
// no user back.
var ErrNoUser = errors.New("backend response carried no user")

type authClient interface {
	CheckAuth(ctx context.Context) (bool, error)
	Me(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
}

// Session holds the signed-in user for one visitor. The backend owns the
// actual session; this only mirrors what it reports.
type Session struct {
	auth   authClient
	logger *log.Logger

	mu   sync.RWMutex
	user *domain.User
}

func New(auth authClient, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{auth: auth, logger: logger}
}

// User returns a copy of the current user, or nil when signed out.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CheckAuth asks the backend whether the session is live and fetches the
// user if so. Any failure leaves the visitor signed out.
func (s *Session) CheckAuth(ctx context.Context) error {
	ok, err := s.auth.CheckAuth(ctx)
	if err != nil {
		s.logger.Printf("session: check-auth error=%v", err)
		s.setUser(nil)
		return err
	}
	if !ok {
		s.setUser(nil)
		return nil
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.logger.Printf("session: fetch current user error=%v", err)
		s.setUser(nil)
		return err
	}
	s.setUser(user)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoUser
	}
	s.setUser(user)
	return s.User(), nil
}

func (s *Session) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := s.auth.Signup(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoUser
	}
	s.setUser(user)
	return s.User(), nil
}

// Logout clears the user only once the backend accepted it; any failure,
// including a non-2xx reply, keeps the visitor signed in.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Printf("session: logout error=%v", err)
		return err
	}
	s.setUser(nil)
	return nil
}

func (s *Session) setUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return
	}
	clone := *u
	s.user = &clone
}
