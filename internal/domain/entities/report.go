package entities

// PatientReport is the nested report payload returned by the backend for
// one patient over an optional date range
type PatientReport struct {
	Patient      Patient       `json:"patient"`
	ReportPeriod ReportPeriod  `json:"report_period"`
	Totals       ReportTotals  `json:"totals"`
	Visits       []ReportVisit `json:"visits"`
}

// ReportPeriod bounds the report window
type ReportPeriod struct {
	FromDate    string `json:"from_date,omitempty"`
	ToDate      string `json:"to_date,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// ReportTotals aggregates the report rows
type ReportTotals struct {
	TotalVisits     int `json:"total_visits"`
	TotalAIAnalyses int `json:"total_ai_analyses"`
}

// ReportVisit is one visit row with its clinical input and, when present,
// the stored analysis
type ReportVisit struct {
	VisitID        string            `json:"visit_id"`
	VisitCreatedAt string            `json:"visit_created_at"`
	Doctor         ReportDoctor      `json:"doctor"`
	ClinicalInput  ReportClinical    `json:"clinical_input"`
	AIAnalysis     *ReportAIAnalysis `json:"ai_analysis"`
}

// ReportDoctor identifies the attending doctor of a visit
type ReportDoctor struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// ReportClinical mirrors the clinical input captured for a visit
type ReportClinical struct {
	Symptoms        []string `json:"symptoms"`
	Duration        string   `json:"duration,omitempty"`
	Severity        string   `json:"severity,omitempty"`
	Vitals          *Vitals  `json:"vitals,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	DoctorDiagnosis string   `json:"doctor_diagnosis,omitempty"`
}

// ReportAIAnalysis mirrors the stored analysis attached to a visit
type ReportAIAnalysis struct {
	ProbableCauses           []string          `json:"probable_causes"`
	RiskLevel                string            `json:"risk_level,omitempty"`
	SpecialistRecommendation string            `json:"specialist_recommendation,omitempty"`
	Summary                  string            `json:"summary,omitempty"`
	ConfidenceScore          *float64          `json:"confidence_score,omitempty"`
	DeviationPercentage      *float64          `json:"deviation_percentage,omitempty"`
	SuggestedDoctors         []SuggestedDoctor `json:"suggested_doctors"`
	CreatedAt                string            `json:"created_at,omitempty"`
}

// SuggestedDoctor is one doctor suggestion returned by the analysis
type SuggestedDoctor struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Reason    string `json:"reason"`
}
