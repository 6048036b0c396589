package views

import (
	"fmt"
	"strings"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// ReportModel is the rendered state of a single patient report: header,
// period label, aggregate totals and one row per visit.
type ReportModel struct {
	PatientName  string
	HealthID     string
	PeriodLabel  string
	GeneratedAt  string
	TotalVisits  int
	TotalReviews int
	Visits       []VisitRow
	Empty        bool
}

// VisitRow is one visit entry in the report timeline
type VisitRow struct {
	VisitID      string
	Date         string
	DoctorName   string
	Symptoms     []string
	Diagnosis    string
	Notes        string
	HasAnalysis  bool
	RiskLabel    string
	RiskTone     string
	Causes       []string
	Specialist   string
	Summary      string
	Suggested    []entities.SuggestedDoctor
}

// BuildReport projects the backend report payload into the report view
func BuildReport(report *entities.PatientReport) ReportModel {
	model := ReportModel{
		PatientName:  report.Patient.FullName,
		HealthID:     report.Patient.HealthID,
		PeriodLabel:  periodLabel(report.ReportPeriod),
		GeneratedAt:  report.ReportPeriod.GeneratedAt,
		TotalVisits:  report.Totals.TotalVisits,
		TotalReviews: report.Totals.TotalAIAnalyses,
		Empty:        len(report.Visits) == 0,
	}
	for _, visit := range report.Visits {
		model.Visits = append(model.Visits, visitRow(visit))
	}
	return model
}

// PDFFileName names the exported report file after the patient's health
// identifier
func PDFFileName(healthID string) string {
	slug := strings.ReplaceAll(strings.TrimSpace(healthID), " ", "_")
	if slug == "" {
		slug = "unknown"
	}
	return fmt.Sprintf("patient-report-%s.pdf", slug)
}

func periodLabel(period entities.ReportPeriod) string {
	switch {
	case period.FromDate != "" && period.ToDate != "":
		return fmt.Sprintf("%s — %s", period.FromDate, period.ToDate)
	case period.FromDate != "":
		return "From " + period.FromDate
	case period.ToDate != "":
		return "Until " + period.ToDate
	default:
		return "All visits"
	}
}

func visitRow(visit entities.ReportVisit) VisitRow {
	row := VisitRow{
		VisitID:    visit.VisitID,
		Date:       visit.VisitCreatedAt,
		DoctorName: visit.Doctor.FullName,
		Symptoms:   visit.ClinicalInput.Symptoms,
		Diagnosis:  visit.ClinicalInput.DoctorDiagnosis,
		Notes:      visit.ClinicalInput.Notes,
	}
	if visit.AIAnalysis != nil {
		row.HasAnalysis = true
		row.RiskLabel = riskLabel(visit.AIAnalysis.RiskLevel)
		row.RiskTone = riskTone(visit.AIAnalysis.RiskLevel)
		row.Causes = visit.AIAnalysis.ProbableCauses
		row.Specialist = visit.AIAnalysis.SpecialistRecommendation
		row.Summary = visit.AIAnalysis.Summary
		row.Suggested = visit.AIAnalysis.SuggestedDoctors
	}
	return row
}

func riskLabel(risk string) string {
	if risk == "" {
		return "Not assessed"
	}
	return strings.ToUpper(risk[:1]) + risk[1:]
}

func riskTone(risk string) string {
	switch strings.ToLower(risk) {
	case "high", "critical":
		return "danger"
	case "medium", "moderate":
		return "warn"
	default:
		return "ok"
	}
}
