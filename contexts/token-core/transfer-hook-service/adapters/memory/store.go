package memory

import (
	"context"
	"sync"
	"time"

	"stablecoin/contexts/token-core/transfer-hook-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
	"stablecoin/internal/shared/addressing"
)

// Store is an in-memory adapter for hook registrations, intended for tests
// and local development wiring.
type Store struct {
	mu    sync.RWMutex
	hooks map[addressing.Address]entities.HookConfig
}

func NewStore() *Store {
	return &Store{
		hooks: make(map[addressing.Address]entities.HookConfig),
	}
}

func (s *Store) GetHook(_ context.Context, address addressing.Address) (entities.HookConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hook, ok := s.hooks[address]
	if !ok {
		return entities.HookConfig{}, domainerrors.ErrNotFound
	}
	return hook, nil
}

func (s *Store) CreateHook(_ context.Context, hook entities.HookConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hooks[hook.Address]; exists {
		return domainerrors.ErrAlreadyExists
	}
	s.hooks[hook.Address] = hook
	return nil
}

func (s *Store) UpdateHook(_ context.Context, hook entities.HookConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hooks[hook.Address]; !ok {
		return domainerrors.ErrNotFound
	}
	s.hooks[hook.Address] = hook
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.HookStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
