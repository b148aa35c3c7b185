package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/learnlink/learnlink/internal/client/repositories/metadata"
	"github.com/learnlink/learnlink/internal/common"
)

// TokenStore is a dumb slot holding at most one token. No validation happens here.
type TokenStore interface {
	// Set persists token. An empty token is ignored.
	Set(ctx context.Context, token string) error
	// Get returns "" when nothing is stored.
	Get(ctx context.Context) (string, error)
	// Clear is idempotent.
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the token in the local metadata table.
type MetadataTokenStore struct {
	repo metadata.Repository
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo}
}

func (s *MetadataTokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *MetadataTokenStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(v), nil
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore lives only as long as the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
