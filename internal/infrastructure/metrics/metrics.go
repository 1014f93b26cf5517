package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GenerationTotal counts sitemap generation attempts per format and
	// outcome. Best-effort generations (the post-OAuth one and the
	// scheduled runs) are observable here even though their errors are
	// never surfaced to callers.
	GenerationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sitemap",
		Name:      "generation_total",
		Help:      "Sitemap generation attempts by format and status.",
	}, []string{"format", "status"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sitemap",
		Name:      "generation_duration_seconds",
		Help:      "Time spent fetching, rendering and persisting one sitemap.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	ScheduledRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sitemap",
		Name:      "scheduled_runs_total",
		Help:      "Completed scheduler ticks.",
	})

	OAuthCallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sitemap",
		Name:      "oauth_callbacks_total",
		Help:      "OAuth callback outcomes.",
	}, []string{"status"})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
