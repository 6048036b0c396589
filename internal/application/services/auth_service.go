package services

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/internal/infrastructure/observability"
	"github.com/careaxis/copilot/pkg/forms"
)

// AuthService drives the login and registration screens: client-side
// validation first, then the backend call, then session establishment.
// Invalid input never reaches the network.
type AuthService struct {
	client   *careaxis.Client
	sessions *SessionService
	notifier providers.Notifier
}

// NewAuthService creates an auth service
func NewAuthService(client *careaxis.Client, sessions *SessionService, notifier providers.Notifier) *AuthService {
	return &AuthService{
		client:   client,
		sessions: sessions,
		notifier: notifier,
	}
}

// Login validates credentials and signs the doctor in. Field errors block
// submission locally; API failures surface as a transient notice.
func (s *AuthService) Login(ctx context.Context, email, password string) (forms.Errors, error) {
	schema := forms.LoginSchema()
	values := map[string]string{
		forms.FieldEmail:    email,
		forms.FieldPassword: password,
	}
	if errs, ok := schema.Validate(values); !ok {
		return errs, nil
	}

	resp, err := s.client.Login(ctx, careaxis.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.notifier.Error("Login failed", careaxis.ErrorMessage(err))
		return nil, err
	}

	if err := s.sessions.Establish(ctx, resp.AccessToken, resp.User); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("doctor_id", resp.User.ID).
		Msg("doctor signed in")
	return nil, nil
}

// Register validates the registration form and creates the account. The
// password mismatch error attaches to the confirmation field only.
func (s *AuthService) Register(ctx context.Context, values map[string]string) (forms.Errors, error) {
	schema := forms.RegistrationSchema()
	if errs, ok := schema.Validate(values); !ok {
		return errs, nil
	}

	resp, err := s.client.Register(ctx, careaxis.RegisterRequest{
		FullName:     values[forms.FieldFullName],
		Email:        values[forms.FieldEmail],
		Password:     values[forms.FieldPassword],
		Organization: values[forms.FieldOrganization],
	})
	if err != nil {
		s.notifier.Error("Registration failed", careaxis.ErrorMessage(err))
		return nil, err
	}

	s.notifier.Success(resp.Message, "")
	return nil, nil
}

// SignOut clears the session
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.sessions.SignOut(ctx)
}
