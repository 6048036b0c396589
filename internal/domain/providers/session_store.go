package providers

import (
	"context"

	"github.com/careaxis/copilot/internal/domain/entities"
)

// SessionStore persists the access token and user identity under fixed
// keys. Save and Clear act on both keys together; Load returns nil when no
// session is stored.
type SessionStore interface {
	Save(ctx context.Context, session *entities.Session) error
	Load(ctx context.Context) (*entities.Session, error)
	Clear(ctx context.Context) error
}
