package services

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	apperrors "github.com/careaxis/copilot/pkg/errors"
)

// SessionService is the single mediator for session state. Components
// never touch the store directly; they read identity and token through
// here.
type SessionService struct {
	store providers.SessionStore
}

// NewSessionService creates a session service over the given store
func NewSessionService(store providers.SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Establish stores a fresh session after login
func (s *SessionService) Establish(ctx context.Context, accessToken string, user entities.AuthUser) error {
	return s.store.Save(ctx, &entities.Session{AccessToken: accessToken, User: user})
}

// Current returns the active session, or nil when signed out
func (s *SessionService) Current(ctx context.Context) (*entities.Session, error) {
	return s.store.Load(ctx)
}

// AccessToken returns the bearer token of the active session
func (s *SessionService) AccessToken(ctx context.Context) (string, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if !session.Authenticated() {
		return "", apperrors.NewUnauthorizedError("no doctor session found")
	}
	return session.AccessToken, nil
}

// CurrentUser returns the signed-in doctor identity
func (s *SessionService) CurrentUser(ctx context.Context) (*entities.AuthUser, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("no doctor session found")
	}
	user := session.User
	return &user, nil
}

// SignOut clears the stored session
func (s *SessionService) SignOut(ctx context.Context) error {
	return s.store.Clear(ctx)
}
