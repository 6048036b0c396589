package careaxis

import (
	"fmt"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// APIError is the uniform failure shape for all endpoints: the HTTP status
// plus the server-supplied detail message when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ErrorMessage extracts a user-facing message from any error returned by
// the client
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Error()
	}
	return err.Error()
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization"`
}

// RegisterResponse is the payload returned by POST /auth/register
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload returned by POST /auth/login
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	User        entities.AuthUser `json:"user"`
}

// PatientsResponse is the payload returned by GET /patients
type PatientsResponse struct {
	Patients []entities.Patient `json:"patients"`
}

// CreatePatientRequest is the payload for POST /patients
type CreatePatientRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// CreatePatientResponse is the payload returned by POST /patients
type CreatePatientResponse struct {
	PatientID string `json:"patient_id"`
	HealthID  string `json:"health_id"`
}

// AnalyzeVisitRequest is the payload for POST /visits/analyze
type AnalyzeVisitRequest struct {
	Symptoms        []string        `json:"symptoms"`
	Duration        string          `json:"duration"`
	Severity        string          `json:"severity"`
	Vitals          entities.Vitals `json:"vitals"`
	Notes           string          `json:"notes"`
	DoctorDiagnosis string          `json:"doctor_diagnosis"`
	PatientID       string          `json:"patient_id"`
	DoctorID        string          `json:"doctor_id"`
}

// AnalyzeVisitResponse is the payload returned by POST /visits/analyze
type AnalyzeVisitResponse struct {
	VisitID                  string                     `json:"visit_id"`
	ProbableCauses           []string                   `json:"probable_causes"`
	RiskLevel                string                     `json:"risk_level"`
	SpecialistRecommendation string                     `json:"specialist_recommendation"`
	Summary                  string                     `json:"summary"`
	ConfidenceScore          float64                    `json:"confidence_score"`
	DeviationPercentage      float64                    `json:"deviation_percentage"`
	SuggestedDoctors         []entities.SuggestedDoctor `json:"suggested_doctors"`
}
