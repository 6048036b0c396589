package review

import (
	"fmt"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// Tone is the visual affordance attached to a row or badge, ordered by
// severity
type Tone string

const (
	ToneOK     Tone = "ok"
	ToneWarn   Tone = "warn"
	ToneDanger Tone = "danger"
)

// Model is everything the compliance review panel renders. It is a pure
// projection of the compliance result and the justification draft; the
// proceed/modify actions live on the workflow, not here.
type Model struct {
	LevelLabel string
	LevelTone  Tone
	Headline   string
	Subline    string

	MatchScore        int
	GuidelinesChecked []string
	Standards         []StandardsRow
	Referrals         []ReferralRow
	Findings          []FindingRow

	NeedsJustification bool
	JustificationChars int
	JustificationOK    bool
	FlaggedForReview   bool

	CanProceed   bool
	ProceedLabel string
}

// StandardsRow is one standards-comparison line
type StandardsRow struct {
	Standard         string
	DoctorSuggestion string
	VerdictLabel     string
	Tone             Tone
	RiskNote         string
}

// ReferralRow is one specialist referral suggestion
type ReferralRow struct {
	Specialty    string
	Reason       string
	UrgencyLabel string
	Tone         Tone
}

// FindingRow is one guideline deviation line
type FindingRow struct {
	Issue     string
	Guideline string
	Detail    string
}

// Build projects a compliance result and the current justification draft
// into the review panel model. Recomputed on every justification
// keystroke.
func Build(result *entities.ComplianceResult, justification entities.Justification) Model {
	level := result.Level
	needsJustification := level.RequiresJustification()
	justificationOK := !needsJustification || justification.Satisfies()

	model := Model{
		LevelLabel:         levelLabel(level),
		LevelTone:          levelTone(level),
		MatchScore:         result.MatchScore,
		NeedsJustification: needsJustification,
		JustificationChars: justification.Length(),
		JustificationOK:    justificationOK,
		FlaggedForReview:   needsJustification,
		CanProceed:         justificationOK,
	}

	if needsJustification {
		model.Headline = "Severe deviation detected — Justification Required"
		model.Subline = "Review issues, compare with standards, and document rationale."
		model.ProceedLabel = "Submit Justification & Finalize"
	} else {
		model.Headline = fmt.Sprintf("%s deviations detected", model.LevelLabel)
		model.Subline = "Compare the doctor's suggestion with industry standards and confirm next steps."
		model.ProceedLabel = "Acknowledge & Proceed"
	}

	if len(result.Guidelines) > 3 {
		model.GuidelinesChecked = result.Guidelines[:3]
	} else {
		model.GuidelinesChecked = result.Guidelines
	}

	for _, row := range result.Standards {
		model.Standards = append(model.Standards, StandardsRow{
			Standard:         row.Standard,
			DoctorSuggestion: row.DoctorSuggestion,
			VerdictLabel:     verdictLabel(row.Verdict),
			Tone:             verdictTone(row.Verdict),
			RiskNote:         row.RiskNote,
		})
	}

	for _, referral := range result.Referrals {
		model.Referrals = append(model.Referrals, ReferralRow{
			Specialty:    referral.Specialty,
			Reason:       referral.Reason,
			UrgencyLabel: string(referral.Urgency),
			Tone:         urgencyTone(referral.Urgency),
		})
	}

	for _, finding := range result.Findings {
		detail := finding.Recommendation
		if finding.Risk != "" {
			detail = finding.Risk
		}
		model.Findings = append(model.Findings, FindingRow{
			Issue:     finding.Issue,
			Guideline: finding.Guideline,
			Detail:    detail,
		})
	}

	return model
}

func levelLabel(level entities.ComplianceLevel) string {
	switch level {
	case entities.ComplianceLevelMinor:
		return "Minor"
	case entities.ComplianceLevelModerate:
		return "Moderate"
	case entities.ComplianceLevelSevere:
		return "Severe"
	default:
		return "None"
	}
}

func levelTone(level entities.ComplianceLevel) Tone {
	switch level {
	case entities.ComplianceLevelSevere:
		return ToneDanger
	case entities.ComplianceLevelModerate:
		return ToneWarn
	default:
		return ToneOK
	}
}

func verdictLabel(verdict entities.ComparisonVerdict) string {
	switch verdict {
	case entities.ComparisonMatch:
		return "Match"
	case entities.ComparisonPartial:
		return "Partial"
	default:
		return "Mismatch"
	}
}

func verdictTone(verdict entities.ComparisonVerdict) Tone {
	switch verdict {
	case entities.ComparisonMatch:
		return ToneOK
	case entities.ComparisonPartial:
		return ToneWarn
	default:
		return ToneDanger
	}
}

func urgencyTone(urgency entities.ReferralUrgency) Tone {
	switch urgency {
	case entities.UrgencyUrgent:
		return ToneDanger
	case entities.UrgencySoon:
		return ToneWarn
	default:
		return ToneOK
	}
}
