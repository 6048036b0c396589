package providers

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// PatientDirectory lists and registers patients. Backed by the CareAxis
// API in production.
type PatientDirectory interface {
	ListPatients(ctx context.Context) ([]entities.Patient, error)
	CreatePatient(ctx context.Context, patient entities.Patient) (id, healthID string, err error)
}
