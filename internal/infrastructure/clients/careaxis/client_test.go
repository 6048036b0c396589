package careaxis_test

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

	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *careaxis.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return careaxis.New(&config.APIConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	})
}

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req careaxis.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "doctor@clinic.org", req.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"user":         map[string]string{"id": "doc-1", "full_name": "Dr. Amina Yusuf"},
		})
	}))

	resp, err := client.Login(context.Background(), careaxis.LoginRequest{
		Email:    "doctor@clinic.org",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.AccessToken)
	assert.Equal(t, "doc-1", resp.User.ID)
}

func TestLogin_ExtractsJSONDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
	}))

	_, err := client.Login(context.Background(), careaxis.LoginRequest{Email: "a@b.co", Password: "password123"})
	require.Error(t, err)

	apiErr, ok := err.(*careaxis.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Error())
}

func TestLogin_PlainTextBodyBecomesDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))

	_, err := client.Login(context.Background(), careaxis.LoginRequest{Email: "a@b.co", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, "upstream unavailable", careaxis.ErrorMessage(err))
}

func TestLogin_GenericFallbackWhenDetailMissing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "unexpected shape"})
	}))

	_, err := client.Login(context.Background(), careaxis.LoginRequest{Email: "a@b.co", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, "request failed with status 500", careaxis.ErrorMessage(err))
}

func TestListPatients_SendsBearerToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/patients", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"patients": []map[string]interface{}{
				{"id": "pat-1", "health_id": "CAX-0001", "full_name": "Chidi Okafor"},
			},
		})
	}))

	resp, err := client.ListPatients(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, resp.Patients, 1)
	assert.Equal(t, "CAX-0001", resp.Patients[0].HealthID)
}

func TestListPatients_RetriesServerErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"patients": []interface{}{}})
	}))

	resp, err := client.ListPatients(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Empty(t, resp.Patients)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestListPatients_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))

	_, err := client.ListPatients(context.Background(), "stale-token")
	require.Error(t, err)
	assert.Equal(t, "Not authenticated", careaxis.ErrorMessage(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not retry")
}

func TestAnalyzeVisit_NeverRetries(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, "/visits/analyze", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "model unavailable"})
	}))

	_, err := client.AnalyzeVisit(context.Background(), careaxis.AnalyzeVisitRequest{
		Symptoms:  []string{"fever"},
		PatientID: "pat-1",
		DoctorID:  "doc-1",
	}, "tok-123")
	require.Error(t, err)
	assert.Equal(t, "model unavailable", careaxis.ErrorMessage(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "analysis must not be retried")
}

func TestPatientReport_QueryParameters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/patients/pat-1", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("from_date"))
		assert.Equal(t, "2026-03-31", r.URL.Query().Get("to_date"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"patient": map[string]string{"id": "pat-1", "full_name": "Chidi Okafor"},
			"totals":  map[string]int{"total_visits": 2, "total_ai_analyses": 1},
			"visits":  []interface{}{},
		})
	}))

	report, err := client.PatientReport(context.Background(), "pat-1", "tok-123", "2026-01-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Totals.TotalVisits)
	assert.Equal(t, 1, report.Totals.TotalAIAnalyses)
}

func TestPatientReportPDF_ReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake body")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/patients/pat-1/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))

	body, err := client.PatientReportPDF(context.Background(), "pat-1", "tok-123", "", "")
	require.NoError(t, err)
	assert.Equal(t, pdf, body)
}

func TestPatientReportPDF_FailureSurfacesDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Patient not found"})
	}))

	_, err := client.PatientReportPDF(context.Background(), "pat-1", "tok-123", "", "")
	require.Error(t, err)
	assert.Equal(t, "Patient not found", careaxis.ErrorMessage(err))
}
