// Package memory provides the in-process SnapshotStore used for single
// instance deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

type SnapshotStore struct {
	mu      sync.Mutex
	token   string
	profile *domain.UserProfile
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *SnapshotStore) LoadToken(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *SnapshotStore) SaveProfile(_ context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile.Clone()
	return nil
}

func (s *SnapshotStore) LoadProfile(_ context.Context) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone(), nil
}

func (s *SnapshotStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = nil
	return nil
}
