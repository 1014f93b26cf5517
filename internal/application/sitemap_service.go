package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/infrastructure/metrics"
	"shopify-sitemap-service/internal/ports"

	"github.com/rs/zerolog"
)

// SitemapService fetches a shop's catalog and writes the rendered sitemap
// artifact. At most one generation per shop runs at a time; concurrent
// calls for the same shop serialize behind a per-shop lock so a slow
// fetch cannot overlap the next scheduled run.
type SitemapService struct {
	credentials ports.CredentialStore
	shopify     ports.ShopifyClient
	renderer    ports.Renderer
	artifacts   ports.ArtifactStore
	logger      zerolog.Logger

	mu        sync.Mutex
	shopLocks map[string]*sync.Mutex
}

func NewSitemapService(
	credentials ports.CredentialStore,
	shopify ports.ShopifyClient,
	renderer ports.Renderer,
	artifacts ports.ArtifactStore,
	logger zerolog.Logger,
) *SitemapService {
	return &SitemapService{
		credentials: credentials,
		shopify:     shopify,
		renderer:    renderer,
		artifacts:   artifacts,
		logger:      logger,
		shopLocks:   make(map[string]*sync.Mutex),
	}
}

// Generate builds and persists the sitemap for one shop and format. It
// fails with ErrUnauthenticated when no credential is stored for the
// shop; an artifact is only ever produced from a stored credential.
func (s *SitemapService) Generate(ctx context.Context, shop string, format domain.Format) error {
	lock := s.shopLock(shop)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	err := s.generate(ctx, shop, format)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.GenerationTotal.WithLabelValues(string(format), status).Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	return err
}

// GenerateAll runs Generate for every supported format, returning the
// first error.
func (s *SitemapService) GenerateAll(ctx context.Context, shop string) error {
	for _, format := range domain.Formats {
		if err := s.Generate(ctx, shop, format); err != nil {
			return err
		}
	}
	return nil
}

func (s *SitemapService) generate(ctx context.Context, shop string, format domain.Format) error {
	cred, err := s.credentials.Get(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to look up credential: %w", err)
	}
	if cred == nil {
		return domain.ErrUnauthenticated
	}

	snapshot, err := s.fetchSnapshot(ctx, shop, cred.AccessToken)
	if err != nil {
		return err
	}

	doc, err := s.renderer.Render(shop, format, snapshot)
	if err != nil {
		return fmt.Errorf("failed to render sitemap: %w", err)
	}

	if err := s.artifacts.Persist(ctx, shop, format, doc); err != nil {
		return err
	}

	s.logger.Info().
		Str("shop", shop).
		Str("format", string(format)).
		Int("products", len(snapshot.Products)).
		Int("collections", len(snapshot.Collections)).
		Int("pages", len(snapshot.Pages)).
		Msg("Sitemap generated")
	return nil
}

// fetchSnapshot pulls products, collections and pages for the shop. A
// failure on any of the three lists aborts the snapshot; no partial
// result is ever returned.
func (s *SitemapService) fetchSnapshot(ctx context.Context, shop, accessToken string) (*domain.CatalogSnapshot, error) {
	products, err := s.shopify.ListProducts(ctx, shop, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetchFailed, err)
	}
	collections, err := s.shopify.ListCollections(ctx, shop, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetchFailed, err)
	}
	pages, err := s.shopify.ListPages(ctx, shop, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetchFailed, err)
	}
	return &domain.CatalogSnapshot{
		Products:    products,
		Collections: collections,
		Pages:       pages,
	}, nil
}

func (s *SitemapService) shopLock(shop string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.shopLocks[shop]
	if !ok {
		lock = &sync.Mutex{}
		s.shopLocks[shop] = lock
	}
	return lock
}
