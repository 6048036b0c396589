package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/copilot/internal/adapters/directory"
	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/pkg/config"
	apperrors "github.com/careaxis/copilot/pkg/errors"
)

type staticToken string

func (s staticToken) AccessToken(ctx context.Context) (string, error) {
	if s == "" {
		return "", apperrors.NewUnauthorizedError("no doctor session found")
	}
	return string(s), nil
}

func newDirectory(t *testing.T, handler http.Handler, token staticToken) providers.PatientDirectory {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := careaxis.New(&config.APIConfig{BaseURL: server.URL, RequestTimeout: 5 * time.Second})
	return directory.NewAPIDirectory(client, token)
}

func TestListPatients_PassesToken(t *testing.T) {
	dir := newDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"patients": []map[string]interface{}{
				{"id": "pat-1", "health_id": "CAX-0001", "full_name": "Chidi Okafor"},
			},
		})
	}), "tok-123")

	patients, err := dir.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "CAX-0001", patients[0].HealthID)
}

func TestListPatients_WithoutSessionFailsUnauthorized(t *testing.T) {
	dir := newDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}), "")

	_, err := dir.ListPatients(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestCreatePatient_ReturnsIdentifiers(t *testing.T) {
	age := 34
	dir := newDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/patients", r.URL.Path)

		var req careaxis.CreatePatientRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Chidi Okafor", req.FullName)
		assert.Equal(t, 34, req.Age)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"patient_id": "pat-9",
			"health_id":  "CAX-0009",
		})
	}), "tok-123")

	id, healthID, err := dir.CreatePatient(context.Background(), entities.Patient{
		FullName: "Chidi Okafor",
		Phone:    "08030000001",
		Age:      &age,
		Gender:   "male",
	})
	require.NoError(t, err)
	assert.Equal(t, "pat-9", id)
	assert.Equal(t, "CAX-0009", healthID)
}
