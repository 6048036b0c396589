package providers

import "context"

// TokenSource supplies the bearer token for authenticated backend calls.
// Satisfied by the session service.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
