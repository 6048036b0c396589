package views

import (
	"strconv"
	"strings"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// DashboardModel is the rendered state of the doctor dashboard: greeting,
// searchable patient roster and the empty-state flag.
type DashboardModel struct {
	DoctorName   string
	PatientCount int
	Patients     []PatientRow
	Empty        bool
}

// PatientRow is one roster entry
type PatientRow struct {
	ID       string
	HealthID string
	FullName string
	Phone    string
	Age      string
	Gender   string
	Initial  string
}

// BuildDashboard projects the signed-in doctor and patient list into the
// dashboard model. A nil user renders an anonymous greeting rather than
// failing; routing guards handle the unauthenticated case.
func BuildDashboard(user *entities.AuthUser, patients []entities.Patient) DashboardModel {
	model := DashboardModel{
		PatientCount: len(patients),
		Empty:        len(patients) == 0,
	}
	if user != nil {
		model.DoctorName = user.FullName
	}
	for _, patient := range patients {
		model.Patients = append(model.Patients, patientRow(patient))
	}
	return model
}

// FilterPatients narrows the roster by a case-insensitive substring match
// on name, health id or phone. A blank query returns all rows.
func FilterPatients(rows []PatientRow, query string) []PatientRow {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return rows
	}
	var out []PatientRow
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.FullName), needle) ||
			strings.Contains(strings.ToLower(row.HealthID), needle) ||
			strings.Contains(row.Phone, needle) {
			out = append(out, row)
		}
	}
	return out
}

func patientRow(patient entities.Patient) PatientRow {
	row := PatientRow{
		ID:       patient.ID,
		HealthID: patient.HealthID,
		FullName: patient.FullName,
		Phone:    patient.Phone,
		Gender:   patient.Gender,
		Initial:  initial(patient.FullName),
	}
	if patient.Age != nil {
		row.Age = strconv.Itoa(*patient.Age)
	}
	return row
}

func initial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	return strings.ToUpper(trimmed[:1])
}
