package compliance

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/pkg/config"
	apperrors "github.com/careaxis/copilot/pkg/errors"
)

// APIProvider runs the analysis through the backend /visits/analyze
// endpoint and maps the response onto a ComplianceResult.
type APIProvider struct {
	client     *careaxis.Client
	tokens     providers.TokenSource
	thresholds config.ComplianceConfig
}

// NewAPIProvider creates a backend-backed compliance provider
func NewAPIProvider(client *careaxis.Client, tokens providers.TokenSource, thresholds config.ComplianceConfig) providers.ComplianceProvider {
	return &APIProvider{
		client:     client,
		tokens:     tokens,
		thresholds: thresholds,
	}
}

// Analyze submits the draft and converts the analysis into the review
// panel's shape
func (p *APIProvider) Analyze(ctx context.Context, draft *entities.ConsultationDraft, doctorID string) (*entities.ComplianceResult, error) {
	token, err := p.tokens.AccessToken(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("no doctor session found")
	}

	resp, err := p.client.AnalyzeVisit(ctx, careaxis.AnalyzeVisitRequest{
		Symptoms:        draft.Symptoms,
		Duration:        string(draft.Duration),
		Severity:        string(draft.Severity),
		Vitals:          draft.Vitals,
		Notes:           draft.Notes,
		DoctorDiagnosis: draft.DoctorDiagnosis,
		PatientID:       draft.PatientID,
		DoctorID:        doctorID,
	}, token)
	if err != nil {
		return nil, err
	}

	level := p.levelFromDeviation(resp.DeviationPercentage)

	referrals := make([]entities.SpecialistReferral, 0, len(resp.SuggestedDoctors))
	for _, doctor := range resp.SuggestedDoctors {
		referrals = append(referrals, entities.SpecialistReferral{
			Specialty: doctor.Specialty,
			Urgency:   urgencyForLevel(level),
			Reason:    doctor.Reason,
		})
	}

	return &entities.ComplianceResult{
		VisitID:        resp.VisitID,
		Level:          level,
		MatchScore:     MatchScoreForLevel(level),
		Referrals:      referrals,
		ProbableCauses: resp.ProbableCauses,
		Summary:        resp.Summary,
		RiskLevel:      resp.RiskLevel,
	}, nil
}

// levelFromDeviation buckets the backend's deviation percentage onto a
// deviation level using the configured thresholds.
func (p *APIProvider) levelFromDeviation(pct float64) entities.ComplianceLevel {
	switch {
	case pct >= p.thresholds.SevereThreshold:
		return entities.ComplianceLevelSevere
	case pct >= p.thresholds.ModerateThreshold:
		return entities.ComplianceLevelModerate
	case pct >= p.thresholds.MinorThreshold:
		return entities.ComplianceLevelMinor
	default:
		return entities.ComplianceLevelNone
	}
}

func urgencyForLevel(level entities.ComplianceLevel) entities.ReferralUrgency {
	switch level {
	case entities.ComplianceLevelSevere:
		return entities.UrgencyUrgent
	case entities.ComplianceLevelModerate:
		return entities.UrgencySoon
	default:
		return entities.UrgencyRoutine
	}
}

// MatchScoreForLevel maps a deviation level onto the displayed match
// score. The score is a deterministic function of the level, not of the
// findings list.
func MatchScoreForLevel(level entities.ComplianceLevel) int {
	switch level {
	case entities.ComplianceLevelMinor:
		return 86
	case entities.ComplianceLevelModerate:
		return 68
	case entities.ComplianceLevelSevere:
		return 42
	default:
		return 100
	}
}
