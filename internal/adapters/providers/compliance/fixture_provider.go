package compliance

import (
	"context"

	"github.com/google/uuid"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
)

// FixtureProvider returns deterministic guideline deviations for local
// development and tests. The level is fixed at construction.
type FixtureProvider struct {
	level entities.ComplianceLevel
}

// NewFixtureProvider creates a fixture compliance provider that always
// reports the given level
func NewFixtureProvider(level entities.ComplianceLevel) providers.ComplianceProvider {
	return &FixtureProvider{level: level}
}

// Analyze returns the fixture result for the configured level
func (p *FixtureProvider) Analyze(ctx context.Context, draft *entities.ConsultationDraft, doctorID string) (*entities.ComplianceResult, error) {
	return &entities.ComplianceResult{
		VisitID:    uuid.New().String(),
		Level:      p.level,
		Findings:   fixtureFindings[p.level],
		MatchScore: MatchScoreForLevel(p.level),
		Standards:  fixtureStandards[p.level],
		Referrals:  fixtureReferrals[p.level],
		Summary:    "Fixture analysis for local development.",
		RiskLevel:  string(draft.Severity),
		Guidelines: fixtureGuidelines,
	}, nil
}

var fixtureGuidelines = []string{
	"ICMR Standard Treatment Guidelines (STG)",
	"WHO Clinical Guidelines (Adult)",
	"Local Antibiotic Stewardship Protocol",
}

var fixtureFindings = map[entities.ComplianceLevel][]entities.DeviationFinding{
	entities.ComplianceLevelMinor: {
		{
			Issue:          "Dose timing may be suboptimal for reported symptoms.",
			Guideline:      "ICMR STG - Fever management",
			Recommendation: "Consider after-food dosing if gastritis risk is present.",
		},
		{
			Issue:          "Follow-up interval could be shortened given borderline vitals.",
			Guideline:      "WHO - Primary care follow-up",
			Recommendation: "Recheck within 48-72 hours if symptoms persist.",
		},
	},
	entities.ComplianceLevelModerate: {
		{
			Issue:          "Medication choice may not align with first-line options for suspected diagnosis.",
			Guideline:      "Local Stewardship - First-line selection",
			Recommendation: "Evaluate alternative first-line therapy before finalizing.",
		},
		{
			Issue:          "Investigation set may be incomplete for differential diagnosis.",
			Guideline:      "ICMR STG - Workup",
			Recommendation: "Consider CBC + Urine routine based on complaints.",
		},
	},
	entities.ComplianceLevelSevere: {
		{
			Issue:     "Potential high-risk interaction / contraindication flagged.",
			Guideline: "WHO - Safety checks",
			Risk:      "May increase adverse event risk; requires documented clinical justification.",
		},
		{
			Issue:     "Deviation from escalation criteria based on oxygen saturation threshold.",
			Guideline: "ICMR STG - Respiratory red flags",
			Risk:      "Delayed escalation can increase morbidity; justification required.",
		},
	},
}

var fixtureStandards = map[entities.ComplianceLevel][]entities.StandardsComparison{
	entities.ComplianceLevelMinor: {
		{
			Standard:         "Antipyretic dosing aligned with weight and gastric tolerance.",
			DoctorSuggestion: "Paracetamol, standard dose; consider timing with food.",
			Verdict:          entities.ComparisonPartial,
			RiskNote:         "Low risk; mainly comfort/tolerance.",
		},
		{
			Standard:         "Follow-up within 48-72h if symptoms persist.",
			DoctorSuggestion: "Follow-up in 5-7 days unless worsening.",
			Verdict:          entities.ComparisonPartial,
			RiskNote:         "May delay reassessment.",
		},
	},
	entities.ComplianceLevelModerate: {
		{
			Standard:         "First-line therapy before broad-spectrum alternatives.",
			DoctorSuggestion: "Consider broader coverage based on local pattern.",
			Verdict:          entities.ComparisonPartial,
			RiskNote:         "Moderate risk of overtreatment / resistance.",
		},
		{
			Standard:         "Baseline labs if differential includes infection/UTI.",
			DoctorSuggestion: "No labs ordered.",
			Verdict:          entities.ComparisonMismatch,
			RiskNote:         "Could miss alternate diagnosis.",
		},
	},
	entities.ComplianceLevelSevere: {
		{
			Standard:         "Avoid contraindicated combinations; document alternative rationale.",
			DoctorSuggestion: "Proceed with combination due to prior response.",
			Verdict:          entities.ComparisonMismatch,
			RiskNote:         "Higher risk of adverse event; requires justification.",
		},
		{
			Standard:         "Escalate/referral when SpO2 below threshold.",
			DoctorSuggestion: "Home observation.",
			Verdict:          entities.ComparisonMismatch,
			RiskNote:         "Potential delayed escalation.",
		},
	},
}

var fixtureReferrals = map[entities.ComplianceLevel][]entities.SpecialistReferral{
	entities.ComplianceLevelMinor: {
		{
			Specialty: "General Medicine",
			Urgency:   entities.UrgencyRoutine,
			Reason:    "No red flags - routine follow-up if symptoms persist.",
		},
	},
	entities.ComplianceLevelModerate: {
		{
			Specialty: "Internal Medicine",
			Urgency:   entities.UrgencySoon,
			Reason:    "Moderate deviations - review diagnosis/workup and optimize therapy.",
		},
		{
			Specialty: "Clinical Pharmacology",
			Urgency:   entities.UrgencyRoutine,
			Reason:    "Medication selection review if multiple comorbidities/meds.",
		},
	},
	entities.ComplianceLevelSevere: {
		{
			Specialty: "Emergency Medicine",
			Urgency:   entities.UrgencyUrgent,
			Reason:    "Severe safety/escalation deviation flagged - urgent clinical assessment advised.",
		},
		{
			Specialty: "Pulmonology",
			Urgency:   entities.UrgencySoon,
			Reason:    "If respiratory red flags persist (e.g., low SpO2), specialist evaluation recommended.",
		},
	},
}
