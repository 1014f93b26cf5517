package ports

import (
	"context"

	"shopify-sitemap-service/internal/domain"
)

// CredentialStore defines the interface for shop credential persistence.
// Get returns (nil, nil) when no credential exists for the shop.
type CredentialStore interface {
	Set(ctx context.Context, cred *domain.ShopCredential) error
	Get(ctx context.Context, shopDomain string) (*domain.ShopCredential, error)
	Delete(ctx context.Context, shopDomain string) error
	ListShops(ctx context.Context) ([]string, error)
}

// StateStore defines the interface for pending OAuth state persistence.
// Set overwrites any state already pending for the shop. Consume returns
// the pending state and deletes it in the same call; it returns "" when
// nothing is pending. Deleting before comparison is what makes a state
// single-use even when the comparison fails.
type StateStore interface {
	Set(ctx context.Context, shopDomain, state string) error
	Consume(ctx context.Context, shopDomain string) (string, error)
}

// ArtifactStore defines the interface for persisting rendered sitemaps.
// Persist overwrites any prior artifact for the same (shop, format) key.
type ArtifactStore interface {
	Persist(ctx context.Context, shopDomain string, format domain.Format, data []byte) error
}
