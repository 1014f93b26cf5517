package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopify-sitemap-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	credentialKeyPrefix = "credential:"
	stateKeyPrefix      = "oauth_state:"
	shopsSetKey         = "shops"
)

// RedisCredentialStore persists shop credentials in Redis so they survive
// process restarts. Each credential lives under its own key and the set
// of known shops is tracked separately for listing.
type RedisCredentialStore struct {
	rdb *redis.Client
}

func NewRedisCredentialStore(rdb *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{rdb: rdb}
}

func (s *RedisCredentialStore) Set(ctx context.Context, cred *domain.ShopCredential) error {
	if cred == nil || cred.ShopDomain == "" {
		return errors.New("credential requires a shop domain")
	}

	now := time.Now()
	stored := *cred
	stored.UpdatedAt = now
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, credentialKeyPrefix+cred.ShopDomain, payload, 0)
	pipe.SAdd(ctx, shopsSetKey, cred.ShopDomain)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (s *RedisCredentialStore) Get(ctx context.Context, shopDomain string) (*domain.ShopCredential, error) {
	payload, err := s.rdb.Get(ctx, credentialKeyPrefix+shopDomain).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	var cred domain.ShopCredential
	if err := json.Unmarshal(payload, &cred); err != nil {
		return nil, fmt.Errorf("failed to decode credential: %w", err)
	}
	return &cred, nil
}

func (s *RedisCredentialStore) Delete(ctx context.Context, shopDomain string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, credentialKeyPrefix+shopDomain)
	pipe.SRem(ctx, shopsSetKey, shopDomain)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

func (s *RedisCredentialStore) ListShops(ctx context.Context) ([]string, error) {
	shops, err := s.rdb.SMembers(ctx, shopsSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

// RedisStateStore keeps pending OAuth states in Redis with a TTL, so a
// pending install expires on its own. GetDel makes consumption atomic:
// two racing callbacks for the same shop cannot both observe the state.
type RedisStateStore struct {
	rdb *redis.Client
}

func NewRedisStateStore(rdb *redis.Client) *RedisStateStore {
	return &RedisStateStore{rdb: rdb}
}

func (s *RedisStateStore) Set(ctx context.Context, shopDomain, state string) error {
	if shopDomain == "" || state == "" {
		return errors.New("shop domain and state are required")
	}
	if err := s.rdb.Set(ctx, stateKeyPrefix+shopDomain, state, domain.StateTTL).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Consume(ctx context.Context, shopDomain string) (string, error) {
	state, err := s.rdb.GetDel(ctx, stateKeyPrefix+shopDomain).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return state, nil
}
