package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/repo"
)

// LoginAPI exchanges credentials for a trips API token.
type LoginAPI interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
}

// AuthService manages signed-in sessions. The browser only ever sees the
// session ID; the API token stays on the server.
type AuthService struct {
	api      LoginAPI
	sessions repo.SessionRepo
	ttl      time.Duration
}

// NewAuthService constructs an AuthService whose sessions last ttl.
func NewAuthService(api LoginAPI, sessions repo.SessionRepo, ttl time.Duration) *AuthService {
	return &AuthService{api: api, sessions: sessions, ttl: ttl}
}

// Login checks credentials with the trips API and stores a new session.
// Returns domain.ErrValidation for blank fields and domain.ErrUnauthorized
// for rejected credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.Session{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	sess, err := s.api.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	sess.ExpiresAt = time.Now().Add(s.ttl).UTC()

	stored, err := s.sessions.Create(ctx, sess)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return stored, nil
}

// Current returns the live session with the given ID. Unknown and expired
// sessions both come back as the anonymous zero Session.
func (s *AuthService) Current(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Current: %w", err)
	}
	if sess.Expired(time.Now()) {
		return domain.Session{}, nil
	}
	return sess, nil
}

// Logout deletes the session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// PruneExpired removes expired sessions and reports how many were removed.
func (s *AuthService) PruneExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("service.AuthService.PruneExpired: %w", err)
	}
	return n, nil
}
