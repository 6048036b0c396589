package entities

import "strings"

// ComplianceLevel classifies how far a clinical decision diverges from
// reference guidelines
type ComplianceLevel string

const (
	ComplianceLevelNone     ComplianceLevel = "none"
	ComplianceLevelMinor    ComplianceLevel = "minor"
	ComplianceLevelModerate ComplianceLevel = "moderate"
	ComplianceLevelSevere   ComplianceLevel = "severe"
)

// Severity returns the ordering rank of the level (none < minor <
// moderate < severe)
func (l ComplianceLevel) Severity() int {
	switch l {
	case ComplianceLevelMinor:
		return 1
	case ComplianceLevelModerate:
		return 2
	case ComplianceLevelSevere:
		return 3
	default:
		return 0
	}
}

// RequiresJustification reports whether acknowledging this level needs a
// documented clinical justification
func (l ComplianceLevel) RequiresJustification() bool {
	return l == ComplianceLevelSevere
}

// DeviationFinding is a single divergence from a referenced guideline
type DeviationFinding struct {
	Issue          string `json:"issue"`
	Guideline      string `json:"guideline"`
	Recommendation string `json:"recommendation,omitempty"`
	Risk           string `json:"risk,omitempty"`
}

// ComparisonVerdict classifies a standards-comparison row
type ComparisonVerdict string

const (
	ComparisonMatch    ComparisonVerdict = "match"
	ComparisonPartial  ComparisonVerdict = "partial"
	ComparisonMismatch ComparisonVerdict = "mismatch"
)

// StandardsComparison contrasts one industry standard with the doctor's
// suggestion
type StandardsComparison struct {
	Standard         string            `json:"standard"`
	DoctorSuggestion string            `json:"doctor_suggestion"`
	Verdict          ComparisonVerdict `json:"verdict"`
	RiskNote         string            `json:"risk_note,omitempty"`
}

// ReferralUrgency tiers a specialist referral suggestion
type ReferralUrgency string

const (
	UrgencyRoutine ReferralUrgency = "Routine"
	UrgencySoon    ReferralUrgency = "Soon"
	UrgencyUrgent  ReferralUrgency = "Urgent"
)

// SpecialistReferral suggests a specialty based on the risk signals
type SpecialistReferral struct {
	Specialty string          `json:"specialty"`
	Urgency   ReferralUrgency `json:"urgency"`
	Reason    string          `json:"reason"`
}

// ComplianceResult is the outcome of analyzing one submitted consultation.
// It is immutable after creation and held only for the duration of the
// review step.
type ComplianceResult struct {
	VisitID        string                `json:"visit_id"`
	Level          ComplianceLevel       `json:"level"`
	Findings       []DeviationFinding    `json:"findings"`
	MatchScore     int                   `json:"match_score"`
	Standards      []StandardsComparison `json:"standards"`
	Referrals      []SpecialistReferral  `json:"referrals"`
	ProbableCauses []string              `json:"probable_causes"`
	Summary        string                `json:"summary"`
	RiskLevel      string                `json:"risk_level"`
	Guidelines     []string              `json:"guidelines"`
}

// MinJustificationLength is the minimum trimmed length of a justification
// required to proceed past a severe deviation.
const MinJustificationLength = 50

// Justification is the doctor-authored rationale attached to a severe
// compliance result
type Justification struct {
	Text string `json:"text"`
}

// Length returns the trimmed character count
func (j Justification) Length() int {
	return len(strings.TrimSpace(j.Text))
}

// Satisfies reports whether the justification meets the minimum length
// invariant
func (j Justification) Satisfies() bool {
	return j.Length() >= MinJustificationLength
}
