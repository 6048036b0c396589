package careaxis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/infrastructure/observability"
	"github.com/careaxis/copilot/pkg/config"
	"github.com/careaxis/copilot/pkg/retry"
)

// Client wraps the CareAxis backend REST API. Every operation takes a
// typed request and an optional bearer token, and fails with *APIError.
type Client struct {
	http     *resty.Client
	getRetry retry.Config
}

// New creates a client against the configured base URL
func New(cfg *config.APIConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		getRetry: retry.DefaultConfig(),
	}
}

// Register calls POST /auth/register
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	out := &RegisterResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login calls POST /auth/login
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	out := &LoginResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPatients calls GET /patients
func (c *Client) ListPatients(ctx context.Context, token string) (*PatientsResponse, error) {
	out := &PatientsResponse{}
	if err := c.getWithRetry(ctx, "/patients", token, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePatient calls POST /patients
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest, token string) (*CreatePatientResponse, error) {
	out := &CreatePatientResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/patients", token, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeVisit calls POST /visits/analyze. Never retried: a failed
// analysis always requires explicit resubmission.
func (c *Client) AnalyzeVisit(ctx context.Context, req AnalyzeVisitRequest, token string) (*AnalyzeVisitResponse, error) {
	out := &AnalyzeVisitResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/visits/analyze", token, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatientReport calls GET /reports/patients/:id
func (c *Client) PatientReport(ctx context.Context, patientID, token, fromDate, toDate string) (*entities.PatientReport, error) {
	out := &entities.PatientReport{}
	path := "/reports/patients/" + url.PathEscape(patientID) + reportQuery(fromDate, toDate)
	if err := c.getWithRetry(ctx, path, token, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatientReportPDF calls GET /reports/patients/:id/pdf and returns the raw
// PDF bytes
func (c *Client) PatientReportPDF(ctx context.Context, patientID, token, fromDate, toDate string) ([]byte, error) {
	path := "/reports/patients/" + url.PathEscape(patientID) + "/pdf" + reportQuery(fromDate, toDate)

	ctx, span := observability.StartSpan(ctx, "careaxis.PatientReportPDF")
	defer span.End()

	resp, err := c.request(ctx, token).Get(path)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if resp.IsError() {
		apiErr := parseError(resp)
		observability.RecordError(span, apiErr)
		return nil, apiErr
	}
	return resp.Body(), nil
}

// getWithRetry wraps an idempotent GET with bounded backoff. Transport
// failures and 5xx responses retry; anything else surfaces immediately.
func (c *Client) getWithRetry(ctx context.Context, path, token string, out interface{}) error {
	var lastErr error
	err := retry.Do(ctx, c.getRetry, func() error {
		lastErr = c.doJSON(ctx, http.MethodGet, path, token, nil, out)
		if lastErr != nil && retryable(lastErr) {
			return lastErr
		}
		return nil
	})
	if err != nil {
		return err
	}
	return lastErr
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	ctx, span := observability.StartSpan(ctx, "careaxis."+method+" "+path)
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	)

	req := c.request(ctx, token)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.SetSpanAttributes(span, attribute.Int("http.status_code", resp.StatusCode()))
	if resp.IsError() {
		apiErr := parseError(resp)
		observability.RecordError(span, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if isJSON(resp.Header().Get("Content-Type")) {
		return json.Unmarshal(resp.Body(), out)
	}
	return &APIError{Status: resp.StatusCode(), Detail: "unexpected non-JSON response"}
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// parseError normalizes a failed response into *APIError. JSON bodies
// contribute a string "detail" field; plain-text bodies contribute the
// body itself; anything else falls back to the generic status message.
func parseError(resp *resty.Response) *APIError {
	body := resp.Body()
	status := resp.StatusCode()

	if isJSON(resp.Header().Get("Content-Type")) {
		var payload struct {
			Detail json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(payload.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
				return &APIError{Status: status, Detail: detail}
			}
		}
		return &APIError{Status: status}
	}

	text := strings.TrimSpace(string(body))
	return &APIError{Status: status, Detail: text}
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}

// retryable limits GET retries to transport failures and server errors.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Status >= 500
	}
	return true
}

func reportQuery(fromDate, toDate string) string {
	params := url.Values{}
	if fromDate != "" {
		params.Set("from_date", fromDate)
	}
	if toDate != "" {
		params.Set("to_date", toDate)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}
