package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/copilot/internal/adapters/session"
	"github.com/careaxis/copilot/internal/application/services"
	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/pkg/config"
	"github.com/careaxis/copilot/pkg/forms"
)

func newAuthFixture(t *testing.T, handler http.Handler) (*services.AuthService, *services.SessionService, *recordingNotifier, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	client := careaxis.New(&config.APIConfig{BaseURL: server.URL, RequestTimeout: 5 * time.Second})
	sessions := services.NewSessionService(session.NewMemoryStore())
	notifier := &recordingNotifier{}
	return services.NewAuthService(client, sessions, notifier), sessions, notifier, &calls
}

func TestLogin_EstablishesSession(t *testing.T) {
	auth, sessions, _, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"user":         map[string]string{"id": "doc-1", "full_name": "Dr. Amina Yusuf"},
		})
	}))

	errs, err := auth.Login(context.Background(), "doctor@clinic.org", "password123")
	require.NoError(t, err)
	assert.Empty(t, errs)

	token, err := sessions.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	user, err := sessions.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dr. Amina Yusuf", user.FullName)
}

func TestLogin_InvalidInputNeverReachesNetwork(t *testing.T) {
	auth, _, _, calls := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	errs, err := auth.Login(context.Background(), "doctor@clinic.org", "short")
	require.NoError(t, err)
	assert.Equal(t, "Password must be at least 8 characters", errs[forms.FieldPassword])
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestLogin_BackendRejectionSurfacesNotice(t *testing.T) {
	auth, sessions, notifier, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
	}))

	_, err := auth.Login(context.Background(), "doctor@clinic.org", "password123")
	require.Error(t, err)

	last, ok := notifier.last()
	require.True(t, ok)
	assert.Equal(t, "error", last.kind)
	assert.Equal(t, "Login failed", last.message)
	assert.Equal(t, "Invalid email or password", last.detail)

	_, err = sessions.AccessToken(context.Background())
	assert.Error(t, err, "failed login leaves no session behind")
}

func TestRegister_MismatchedPasswordsNeverReachNetwork(t *testing.T) {
	auth, _, _, calls := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	errs, err := auth.Register(context.Background(), map[string]string{
		forms.FieldFullName:        "Dr. Amina Yusuf",
		forms.FieldEmail:           "amina@clinic.org",
		forms.FieldPassword:        "password123",
		forms.FieldConfirmPassword: "password124",
		forms.FieldOrganization:    "CareAxis Clinic",
	})
	require.NoError(t, err)
	assert.Equal(t, "Passwords do not match", errs[forms.FieldConfirmPassword])
	assert.NotContains(t, errs, forms.FieldPassword)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestRegister_SuccessNotifiesWithServerMessage(t *testing.T) {
	auth, _, notifier, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)

		var req careaxis.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CareAxis Clinic", req.Organization)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Registration successful. Please login."})
	}))

	errs, err := auth.Register(context.Background(), map[string]string{
		forms.FieldFullName:        "Dr. Amina Yusuf",
		forms.FieldEmail:           "amina@clinic.org",
		forms.FieldPassword:        "password123",
		forms.FieldConfirmPassword: "password123",
		forms.FieldOrganization:    "CareAxis Clinic",
	})
	require.NoError(t, err)
	assert.Empty(t, errs)

	last, ok := notifier.last()
	require.True(t, ok)
	assert.Equal(t, "success", last.kind)
	assert.Equal(t, "Registration successful. Please login.", last.message)
}

func TestSignOut_ClearsSession(t *testing.T) {
	auth, sessions, _, _ := newAuthFixture(t, http.NewServeMux())
	ctx := context.Background()

	require.NoError(t, sessions.Establish(ctx, "tok-123", entities.AuthUser{ID: "doc-1"}))
	require.NoError(t, auth.SignOut(ctx))

	_, err := sessions.AccessToken(ctx)
	assert.Error(t, err)
}
