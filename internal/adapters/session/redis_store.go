package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	redisclient "github.com/careaxis/copilot/internal/infrastructure/clients/redis"
)

// RedisStore persists the session under two fixed keys. The token and the
// user record are written and cleared together; a session missing either
// key is treated as absent.
type RedisStore struct {
	client   *redisclient.Client
	tokenKey string
	userKey  string
}

// NewRedisStore creates a Redis-backed session store. keyPrefix namespaces
// the fixed keys, e.g. "careaxis" yields "careaxis:access_token".
func NewRedisStore(client *redisclient.Client, keyPrefix string) providers.SessionStore {
	return &RedisStore{
		client:   client,
		tokenKey: keyPrefix + ":access_token",
		userKey:  keyPrefix + ":auth_user",
	}
}

// Save stores the token and user record
func (s *RedisStore) Save(ctx context.Context, session *entities.Session) error {
	userData, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to marshal auth user: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.tokenKey, session.AccessToken, 0).Err(); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.userKey, userData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store auth user: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when none exists
func (s *RedisStore) Load(ctx context.Context) (*entities.Session, error) {
	token, err := s.client.Client().Get(ctx, s.tokenKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load access token: %w", err)
	}

	userData, err := s.client.Client().Get(ctx, s.userKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load auth user: %w", err)
	}

	var user entities.AuthUser
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth user: %w", err)
	}
	return &entities.Session{AccessToken: token, User: user}, nil
}

// Clear removes both keys together
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Client().Del(ctx, s.tokenKey, s.userKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
