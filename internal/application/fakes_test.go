package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shopify-sitemap-service/internal/domain"
)

var errSentinel = errors.New("upstream unavailable")

// fakeShopifyClient serves a canned catalog and records token exchanges.
type fakeShopifyClient struct {
	catalog      map[string]*domain.CatalogSnapshot
	exchangeErr  error
	listErr      error
	exchanges    int
	issuedTokens map[string]string // shop -> token returned by ExchangeToken
}

func newFakeShopifyClient() *fakeShopifyClient {
	return &fakeShopifyClient{
		catalog:      make(map[string]*domain.CatalogSnapshot),
		issuedTokens: make(map[string]string),
	}
}

func (f *fakeShopifyClient) AuthorizeURL(shop, state string) string {
	return fmt.Sprintf("https://%s/admin/oauth/authorize?client_id=test&state=%s", shop, state)
}

func (f *fakeShopifyClient) ExchangeToken(_ context.Context, shop, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	f.exchanges++
	token := "token-for-" + shop
	f.issuedTokens[shop] = token
	return token, nil
}

func (f *fakeShopifyClient) snapshot(shop string) *domain.CatalogSnapshot {
	if snap, ok := f.catalog[shop]; ok {
		return snap
	}
	return &domain.CatalogSnapshot{}
}

func (f *fakeShopifyClient) ListProducts(_ context.Context, shop, _ string) ([]domain.CatalogEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(shop).Products, nil
}

func (f *fakeShopifyClient) ListCollections(_ context.Context, shop, _ string) ([]domain.CatalogEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(shop).Collections, nil
}

func (f *fakeShopifyClient) ListPages(_ context.Context, shop, _ string) ([]domain.CatalogEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(shop).Pages, nil
}

// fakeArtifactStore keeps persisted artifacts in memory.
type fakeArtifactStore struct {
	mu        sync.Mutex
	artifacts map[string][]byte
	failNext  bool
}

func newFakeArtifactStore() *fakeArtifactStore {
	return &fakeArtifactStore{artifacts: make(map[string][]byte)}
}

func (f *fakeArtifactStore) Persist(_ context.Context, shop string, format domain.Format, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, errors.New("disk full"))
	}
	f.artifacts[shop+"."+string(format)] = append([]byte(nil), data...)
	return nil
}

func (f *fakeArtifactStore) get(shop string, format domain.Format) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.artifacts[shop+"."+string(format)]
}
