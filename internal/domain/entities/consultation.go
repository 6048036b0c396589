package entities

import "strings"

// DurationBucket classifies how long symptoms have been present
type DurationBucket string

const (
	DurationOneDay       DurationBucket = "1 day"
	DurationTwoThreeDays DurationBucket = "2-3 days"
	DurationFourSeven    DurationBucket = "4-7 days"
	DurationOneTwoWeeks  DurationBucket = "1-2 weeks"
	DurationOverTwoWeeks DurationBucket = ">2 weeks"
)

// SeverityBucket classifies the doctor's assessment of symptom severity
type SeverityBucket string

const (
	SeverityLow      SeverityBucket = "low"
	SeverityMedium   SeverityBucket = "medium"
	SeverityHigh     SeverityBucket = "high"
	SeverityCritical SeverityBucket = "critical"
)

// Vitals maps named measurements to numeric-or-absent values. A nil entry
// means the measurement was not taken.
type Vitals struct {
	BloodPressure BloodPressure `json:"blood_pressure"`
	TemperatureC  *float64      `json:"temperature_c"`
	Pulse         *float64      `json:"pulse"`
	SpO2          *float64      `json:"spo2"`
	WeightKg      *float64      `json:"weight_kg"`
}

// BloodPressure holds the systolic/diastolic pair
type BloodPressure struct {
	Systolic  *float64 `json:"systolic"`
	Diastolic *float64 `json:"diastolic"`
}

// ConsultationDraft is the clinical input under edit for a single patient.
// It exists only in memory until submitted; leaving the workflow discards
// it.
type ConsultationDraft struct {
	PatientID       string         `json:"patient_id"`
	Symptoms        []string       `json:"symptoms"`
	Duration        DurationBucket `json:"duration"`
	Severity        SeverityBucket `json:"severity"`
	Vitals          Vitals         `json:"vitals"`
	Notes           string         `json:"notes"`
	DoctorDiagnosis string         `json:"doctor_diagnosis"`
}

// NewConsultationDraft returns a pristine draft for the given patient with
// the default duration/severity buckets preselected.
func NewConsultationDraft(patientID string) *ConsultationDraft {
	return &ConsultationDraft{
		PatientID: patientID,
		Symptoms:  []string{},
		Duration:  DurationTwoThreeDays,
		Severity:  SeverityHigh,
	}
}

// AddSymptom trims and appends a symptom. It reports false without
// modifying the list when the trimmed value is empty or already present
// (case-sensitive exact match).
func (d *ConsultationDraft) AddSymptom(raw string) bool {
	value := strings.TrimSpace(raw)
	if value == "" {
		return false
	}
	for _, existing := range d.Symptoms {
		if existing == value {
			return false
		}
	}
	d.Symptoms = append(d.Symptoms, value)
	return true
}

// RemoveSymptom deletes the symptom at the given index, ignoring
// out-of-range indexes
func (d *ConsultationDraft) RemoveSymptom(index int) {
	if index < 0 || index >= len(d.Symptoms) {
		return
	}
	d.Symptoms = append(d.Symptoms[:index], d.Symptoms[index+1:]...)
}
