package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

const (
	tokenKey   = "session:token"
	profileKey = "session:profile"
)

// SnapshotStore persists the session token and identity snapshot in Redis.
// The two keys are written independently (last-writer-wins, no atomicity
// across them).
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore wraps the given Redis client. A non-zero ttl bounds how
// long a persisted session survives a gateway restart.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, ttl: ttl}
}

func (s *SnapshotStore) SaveToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, tokenKey, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SnapshotStore) LoadToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *SnapshotStore) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.client.Set(ctx, profileKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SnapshotStore) LoadProfile(ctx context.Context) (*domain.UserProfile, error) {
	payload, err := s.client.Get(ctx, profileKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

func (s *SnapshotStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey, profileKey).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
