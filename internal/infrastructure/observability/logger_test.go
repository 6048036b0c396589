package observability_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/careaxis/copilot/internal/infrastructure/observability"
)

func TestInitLogger_LevelFollowsEnvironment(t *testing.T) {
	observability.InitLogger("careaxis-copilot", "development")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	observability.InitLogger("careaxis-copilot", "production")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestLoggerFromContext_NoSpanReturnsGlobalLogger(t *testing.T) {
	logger := observability.LoggerFromContext(context.Background())
	assert.Equal(t, &log.Logger, logger)
}
