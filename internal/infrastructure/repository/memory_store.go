package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"shopify-sitemap-service/internal/domain"
)

// MemoryCredentialStore is a thread-safe in-memory credential store.
// Credentials live for the process lifetime and are lost on restart.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	creds map[string]*domain.ShopCredential
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		creds: make(map[string]*domain.ShopCredential),
	}
}

func (s *MemoryCredentialStore) Set(_ context.Context, cred *domain.ShopCredential) error {
	if cred == nil || cred.ShopDomain == "" {
		return errors.New("credential requires a shop domain")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	createdAt := now
	if existing, ok := s.creds[cred.ShopDomain]; ok {
		createdAt = existing.CreatedAt
	}

	// Store a copy to prevent external modifications
	s.creds[cred.ShopDomain] = &domain.ShopCredential{
		ShopDomain:  cred.ShopDomain,
		AccessToken: cred.AccessToken,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
	return nil
}

func (s *MemoryCredentialStore) Get(_ context.Context, shopDomain string) (*domain.ShopCredential, error) {
	if shopDomain == "" {
		return nil, errors.New("shop domain cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[shopDomain]
	if !ok {
		return nil, nil
	}

	copied := *cred
	return &copied, nil
}

func (s *MemoryCredentialStore) Delete(_ context.Context, shopDomain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.creds, shopDomain)
	return nil
}

func (s *MemoryCredentialStore) ListShops(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := make([]string, 0, len(s.creds))
	for shop := range s.creds {
		shops = append(shops, shop)
	}
	return shops, nil
}

// MemoryStateStore is a thread-safe in-memory store for pending OAuth
// states. One state per shop; Set overwrites, Consume removes.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]*domain.OAuthState
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]*domain.OAuthState),
	}
}

func (s *MemoryStateStore) Set(_ context.Context, shopDomain, state string) error {
	if shopDomain == "" {
		return errors.New("shop domain cannot be empty")
	}
	if state == "" {
		return errors.New("state cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[shopDomain] = &domain.OAuthState{
		ShopDomain: shopDomain,
		State:      state,
		CreatedAt:  time.Now(),
	}
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, shopDomain string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.states[shopDomain]
	if !ok {
		return "", nil
	}
	delete(s.states, shopDomain)

	if time.Since(pending.CreatedAt) > domain.StateTTL {
		return "", nil
	}
	return pending.State, nil
}
