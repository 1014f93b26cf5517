package scheduler

import (
	"context"
	"time"

	"shopify-sitemap-service/internal/application"
	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/infrastructure/metrics"
	"shopify-sitemap-service/internal/ports"

	"github.com/rs/zerolog"
)

// Scheduler regenerates the sitemaps of every known shop on interval
// boundaries: with the default 6h interval it fires at 00:00, 06:00,
// 12:00 and 18:00 UTC. Shops are processed sequentially; one shop's
// failure is logged and does not stop the iteration.
type Scheduler struct {
	interval    time.Duration
	credentials ports.CredentialStore
	sitemaps    *application.SitemapService
	logger      zerolog.Logger
}

func New(interval time.Duration, credentials ports.CredentialStore, sitemaps *application.SitemapService, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		interval:    interval,
		credentials: credentials,
		sitemaps:    sitemaps,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, firing RunOnce at each interval
// boundary.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := NextBoundary(time.Now().UTC(), s.interval)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.RunOnce(ctx)
	}
}

// NextBoundary returns the first instant strictly after now that falls on
// a multiple of interval since the epoch. For a 6h interval that is the
// next of 00:00, 06:00, 12:00, 18:00 UTC.
func NextBoundary(now time.Time, interval time.Duration) time.Time {
	return now.Truncate(interval).Add(interval)
}

// RunOnce regenerates both sitemap formats for every shop with a stored
// credential.
func (s *Scheduler) RunOnce(ctx context.Context) {
	shops, err := s.credentials.ListShops(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled run could not list shops")
		return
	}

	s.logger.Info().Int("shops", len(shops)).Msg("Scheduled sitemap refresh started")
	for _, shop := range shops {
		for _, format := range domain.Formats {
			if err := s.sitemaps.Generate(ctx, shop, format); err != nil {
				s.logger.Error().
					Err(err).
					Str("shop", shop).
					Str("format", string(format)).
					Msg("Scheduled sitemap generation failed")
			}
		}
	}
	metrics.ScheduledRunsTotal.Inc()
	s.logger.Info().Int("shops", len(shops)).Msg("Scheduled sitemap refresh finished")
}
