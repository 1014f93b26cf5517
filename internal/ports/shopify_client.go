package ports

import (
	"context"

	"shopify-sitemap-service/internal/domain"
)

// ShopifyClient defines the interface for Shopify API operations used by
// the sitemap service.
type ShopifyClient interface {
	// Authentication
	AuthorizeURL(shop string, state string) string
	ExchangeToken(ctx context.Context, shop string, code string) (string, error)

	// Catalog API
	ListProducts(ctx context.Context, shop string, accessToken string) ([]domain.CatalogEntry, error)
	ListCollections(ctx context.Context, shop string, accessToken string) ([]domain.CatalogEntry, error)
	ListPages(ctx context.Context, shop string, accessToken string) ([]domain.CatalogEntry, error)
}

// Renderer turns a catalog snapshot into a sitemap document.
type Renderer interface {
	Render(shop string, format domain.Format, snapshot *domain.CatalogSnapshot) ([]byte, error)
}
