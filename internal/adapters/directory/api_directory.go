package directory

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	apperrors "github.com/careaxis/copilot/pkg/errors"
)

// APIDirectory implements the patient directory over the CareAxis backend
type APIDirectory struct {
	client *careaxis.Client
	tokens providers.TokenSource
}

// NewAPIDirectory creates a backend-backed patient directory
func NewAPIDirectory(client *careaxis.Client, tokens providers.TokenSource) providers.PatientDirectory {
	return &APIDirectory{client: client, tokens: tokens}
}

// ListPatients returns all registered patients
func (d *APIDirectory) ListPatients(ctx context.Context) ([]entities.Patient, error) {
	token, err := d.tokens.AccessToken(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("no doctor session found")
	}
	resp, err := d.client.ListPatients(ctx, token)
	if err != nil {
		return nil, err
	}
	return resp.Patients, nil
}

// CreatePatient registers a new patient and returns its identifiers
func (d *APIDirectory) CreatePatient(ctx context.Context, patient entities.Patient) (string, string, error) {
	token, err := d.tokens.AccessToken(ctx)
	if err != nil {
		return "", "", apperrors.NewUnauthorizedError("no doctor session found")
	}
	age := 0
	if patient.Age != nil {
		age = *patient.Age
	}
	resp, err := d.client.CreatePatient(ctx, careaxis.CreatePatientRequest{
		FullName: patient.FullName,
		Phone:    patient.Phone,
		Age:      age,
		Gender:   patient.Gender,
	}, token)
	if err != nil {
		return "", "", err
	}
	return resp.PatientID, resp.HealthID, nil
}
