package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/infrastructure/metrics"
	"shopify-sitemap-service/internal/ports"

	"github.com/rs/zerolog"
)

// AuthService runs the OAuth install flow: it issues the authorize
// redirect with a one-time state token and completes the callback by
// exchanging the authorization code for an access token.
type AuthService struct {
	credentials ports.CredentialStore
	states      ports.StateStore
	shopify     ports.ShopifyClient
	sitemaps    *SitemapService
	logger      zerolog.Logger
}

func NewAuthService(
	credentials ports.CredentialStore,
	states ports.StateStore,
	shopify ports.ShopifyClient,
	sitemaps *SitemapService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		states:      states,
		shopify:     shopify,
		sitemaps:    sitemaps,
		logger:      logger,
	}
}

// BeginInstall records a fresh state token for the shop and returns the
// platform authorize URL to redirect the merchant to.
func (s *AuthService) BeginInstall(ctx context.Context, shop string) (string, error) {
	if shop == "" {
		return "", fmt.Errorf("%w: shop", domain.ErrMissingParameter)
	}
	if !domain.IsValidShopDomain(shop) {
		return "", fmt.Errorf("%w: shop %q", domain.ErrMissingParameter, shop)
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(stateBytes)

	if err := s.states.Set(ctx, shop, state); err != nil {
		return "", fmt.Errorf("failed to record oauth state: %w", err)
	}

	s.logger.Info().Str("shop", shop).Msg("Install flow started")
	return s.shopify.AuthorizeURL(shop, state), nil
}

// CompleteCallback verifies the callback state, exchanges the code for an
// access token and stores the credential. The stored state is consumed
// whether or not it matches, so a given token can be tried exactly once.
// Initial generation of both sitemap formats is best-effort: failures are
// logged and counted but do not fail the install.
func (s *AuthService) CompleteCallback(ctx context.Context, shop, code, state string) error {
	if shop == "" || code == "" || state == "" {
		return fmt.Errorf("%w: shop, code and state are required", domain.ErrMissingParameter)
	}

	stored, err := s.states.Consume(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if stored == "" || stored != state {
		metrics.OAuthCallbacksTotal.WithLabelValues("state_mismatch").Inc()
		return domain.ErrStateMismatch
	}

	token, err := s.shopify.ExchangeToken(ctx, shop, code)
	if err != nil {
		metrics.OAuthCallbacksTotal.WithLabelValues("exchange_failed").Inc()
		return fmt.Errorf("%w: %v", domain.ErrTokenExchangeFailed, err)
	}

	if err := s.credentials.Set(ctx, &domain.ShopCredential{ShopDomain: shop, AccessToken: token}); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	metrics.OAuthCallbacksTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("shop", shop).Msg("Shop installed")

	for _, format := range domain.Formats {
		if err := s.sitemaps.Generate(ctx, shop, format); err != nil {
			s.logger.Error().
				Err(err).
				Str("shop", shop).
				Str("format", string(format)).
				Msg("Initial sitemap generation failed")
		}
	}
	return nil
}
