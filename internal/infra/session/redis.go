package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rehabflow/care-scheduler/internal/domain/calendar"
)

// RedisStore persists calendar state as JSON under calendar:state:<user>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func stateKey(userID string) string {
	return "calendar:state:" + userID
}

func (s *RedisStore) Load(ctx context.Context, userID string) (calendar.State, bool, error) {
	raw, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return calendar.State{}, false, nil
	}
	if err != nil {
		return calendar.State{}, false, fmt.Errorf("session: load %s: %w", userID, err)
	}

	var st calendar.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return calendar.State{}, false, fmt.Errorf("session: decode %s: %w", userID, err)
	}
	return st, true, nil
}

// Save refreshes the TTL on every write.
func (s *RedisStore) Save(ctx context.Context, userID string, st calendar.State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, stateKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save %s: %w", userID, err)
	}
	return nil
}
