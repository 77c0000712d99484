package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agrovia/agroexport-web/pkg/enums"
	redisclient "github.com/agrovia/agroexport-web/pkg/redis"
)

// redisStore keeps session credentials in Redis with a sliding TTL. Writes
// are atomic per key, so concurrent tabs racing on login/logout collapse to
// last-writer-wins without partial state.
type redisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisStore builds the production session store.
func NewRedisStore(client *redisclient.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string, role enums.Role) (Credentials, bool, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(sessionID, role.String()))
	if err != nil {
		if errors.Is(err, redisclient.ErrNotFound) {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, fmt.Errorf("reading session: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("decoding session: %w", err)
	}
	return creds, creds.Token != "", nil
}

func (s *redisStore) Set(ctx context.Context, sessionID string, role enums.Role, creds Credentials) error {
	encoded, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.client.Set(ctx, s.client.SessionKey(sessionID, role.String()), string(encoded), s.ttl)
}

func (s *redisStore) Clear(ctx context.Context, sessionID string, role enums.Role) error {
	return s.client.Del(ctx, s.client.SessionKey(sessionID, role.String()))
}

func (s *redisStore) ClearAll(ctx context.Context, sessionID string) error {
	keys := make([]string, 0, 3)
	for _, role := range []enums.Role{enums.RoleAdmin, enums.RoleVendor, enums.RoleCustomer} {
		keys = append(keys, s.client.SessionKey(sessionID, role.String()))
	}
	return s.client.Del(ctx, keys...)
}
