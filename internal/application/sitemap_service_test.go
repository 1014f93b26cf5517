package application_test

import (
	"context"
	"testing"

	"shopify-sitemap-service/internal/application"
	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/infrastructure/repository"
	"shopify-sitemap-service/internal/infrastructure/sitemap"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type sitemapFixture struct {
	credentials *repository.MemoryCredentialStore
	shopify     *fakeShopifyClient
	artifacts   *fakeArtifactStore
	service     *application.SitemapService
}

func setupSitemapFixture(t *testing.T) *sitemapFixture {
	t.Helper()

	credentials := repository.NewMemoryCredentialStore()
	shopify := newFakeShopifyClient()
	artifacts := newFakeArtifactStore()
	service := application.NewSitemapService(credentials, shopify, sitemap.NewRenderer(), artifacts, zerolog.Nop())

	return &sitemapFixture{
		credentials: credentials,
		shopify:     shopify,
		artifacts:   artifacts,
		service:     service,
	}
}

func (f *sitemapFixture) authenticate(t *testing.T, shop string) {
	t.Helper()
	err := f.credentials.Set(context.Background(), &domain.ShopCredential{ShopDomain: shop, AccessToken: "tok"})
	require.NoError(t, err)
}

func TestGenerateRequiresCredential(t *testing.T) {
	f := setupSitemapFixture(t)

	err := f.service.Generate(context.Background(), "test.myshopify.com", domain.FormatXML)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	require.Empty(t, f.artifacts.get("test.myshopify.com", domain.FormatXML))
}

func TestGeneratePersistsArtifact(t *testing.T) {
	ctx := context.Background()
	f := setupSitemapFixture(t)
	f.authenticate(t, "test.myshopify.com")
	f.shopify.catalog["test.myshopify.com"] = &domain.CatalogSnapshot{
		Products:    []domain.CatalogEntry{{Handle: "p1", Title: "P1"}, {Handle: "p2", Title: "P2"}},
		Collections: []domain.CatalogEntry{{Handle: "c1", Title: "C1"}},
	}

	require.NoError(t, f.service.Generate(ctx, "test.myshopify.com", domain.FormatXML))

	doc := string(f.artifacts.get("test.myshopify.com", domain.FormatXML))
	require.Contains(t, doc, "<loc>https://test.myshopify.com/products/p1</loc>")
	require.Contains(t, doc, "<loc>https://test.myshopify.com/collections/c1</loc>")
}

func TestGenerateAllWritesBothFormats(t *testing.T) {
	ctx := context.Background()
	f := setupSitemapFixture(t)
	f.authenticate(t, "test.myshopify.com")

	require.NoError(t, f.service.GenerateAll(ctx, "test.myshopify.com"))
	require.NotEmpty(t, f.artifacts.get("test.myshopify.com", domain.FormatXML))
	require.NotEmpty(t, f.artifacts.get("test.myshopify.com", domain.FormatHTML))
}

func TestGenerateFetchFailureIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := setupSitemapFixture(t)
	f.authenticate(t, "test.myshopify.com")
	f.shopify.listErr = errSentinel

	err := f.service.Generate(ctx, "test.myshopify.com", domain.FormatXML)
	require.ErrorIs(t, err, domain.ErrUpstreamFetchFailed)
	require.Empty(t, f.artifacts.get("test.myshopify.com", domain.FormatXML))
}

func TestGeneratePersistFailure(t *testing.T) {
	ctx := context.Background()
	f := setupSitemapFixture(t)
	f.authenticate(t, "test.myshopify.com")
	f.artifacts.failNext = true

	err := f.service.Generate(ctx, "test.myshopify.com", domain.FormatXML)
	require.ErrorIs(t, err, domain.ErrPersistFailed)
}

func TestGenerateIsIdempotentForUnchangedCatalog(t *testing.T) {
	ctx := context.Background()
	f := setupSitemapFixture(t)
	f.authenticate(t, "test.myshopify.com")
	f.shopify.catalog["test.myshopify.com"] = &domain.CatalogSnapshot{
		Products: []domain.CatalogEntry{{Handle: "p1", Title: "P1"}},
		Pages:    []domain.CatalogEntry{{Handle: "about", Title: "About"}},
	}

	for _, format := range domain.Formats {
		require.NoError(t, f.service.Generate(ctx, "test.myshopify.com", format))
		first := f.artifacts.get("test.myshopify.com", format)

		require.NoError(t, f.service.Generate(ctx, "test.myshopify.com", format))
		second := f.artifacts.get("test.myshopify.com", format)

		require.Equal(t, first, second)
	}
}
