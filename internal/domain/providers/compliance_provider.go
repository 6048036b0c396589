package providers

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// ComplianceProvider analyzes a submitted consultation against reference
// guidelines. Implementations: the backend analysis endpoint and a fixture
// provider for tests and demo mode.
type ComplianceProvider interface {
	Analyze(ctx context.Context, draft *entities.ConsultationDraft, doctorID string) (*entities.ComplianceResult, error)
}
