package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	ierr "go-smartshop/internal/errors"
	"go-smartshop/internal/utils"

	"github.com/rs/zerolog/log"
)

type Session struct {
	UserId       string
	Email        string
	IdToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Provider talks to the identity backend.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password string) (Session, error)
}

// Service keeps the signed-in session of this process.
type Service struct {
	provider Provider
	mu       sync.RWMutex
	session  *Session
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	return s.authenticate(ctx, "login", email, password, s.provider.SignIn)
}

func (s *Service) Register(ctx context.Context, email, password string) (Session, error) {
	return s.authenticate(ctx, "register", email, password, s.provider.SignUp)
}

func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		log.Info().Msgf("auth: %s logged out", utils.Fingerprint(s.session.Email))
	}
	s.session = nil
}

func (s *Service) CurrentUser() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return Session{}, ierr.NotLoggedIn
	}
	return *s.session, nil
}

func (s *Service) IsLoggedIn() bool {
	_, err := s.CurrentUser()
	return err == nil
}

func (s *Service) authenticate(ctx context.Context, op, email, password string,
	fn func(context.Context, string, string) (Session, error)) (Session, error) {

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%s: %w", op, ierr.InvalidCredentials)
	}

	session, err := fn(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	log.Info().Msgf("auth: %s succeeded for %s", op, utils.Fingerprint(session.Email))
	return session, nil
}
