package compliance

import (
	"fmt"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/pkg/config"
)

// NewFromConfig selects the compliance provider implementation
func NewFromConfig(cfg config.ComplianceConfig, client *careaxis.Client, tokens providers.TokenSource) (providers.ComplianceProvider, error) {
	switch cfg.Provider {
	case "api":
		if client == nil {
			return nil, fmt.Errorf("api compliance provider requires a backend client")
		}
		return NewAPIProvider(client, tokens, cfg), nil
	case "fixture":
		return NewFixtureProvider(entities.ComplianceLevelModerate), nil
	default:
		return nil, fmt.Errorf("unknown compliance provider: %s", cfg.Provider)
	}
}
