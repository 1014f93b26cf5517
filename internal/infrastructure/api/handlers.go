package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"shopify-sitemap-service/internal/application"
	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/infrastructure/shopify"
	"shopify-sitemap-service/internal/ports"

	"github.com/rs/zerolog"
)

// shopDomainHeader carries the shop identity on the on-demand generate
// endpoint, set by the embedded app shell.
const shopDomainHeader = "x-shop-domain"

// Handlers wires the HTTP surface to the application services.
type Handlers struct {
	auth        *application.AuthService
	sitemaps    *application.SitemapService
	credentials ports.CredentialStore
	verifier    *shopify.RequestVerifier
	apiKey      string
	publicDir   string
	logger      zerolog.Logger
}

func NewHandlers(
	auth *application.AuthService,
	sitemaps *application.SitemapService,
	credentials ports.CredentialStore,
	verifier *shopify.RequestVerifier,
	apiKey string,
	publicDir string,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		auth:        auth,
		sitemaps:    sitemaps,
		credentials: credentials,
		verifier:    verifier,
		apiKey:      apiKey,
		publicDir:   publicDir,
		logger:      logger,
	}
}

// Health is the liveness probe.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Install starts the OAuth flow by redirecting to the platform authorize
// URL.
func (h *Handlers) Install(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		http.Error(w, "Missing shop parameter", http.StatusBadRequest)
		return
	}

	authorizeURL, err := h.auth.BeginInstall(r.Context(), shop)
	if err != nil {
		if errors.Is(err, domain.ErrMissingParameter) {
			http.Error(w, "Missing shop parameter", http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to start install flow")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// SignedEntry handles the signed app entry point: it verifies the hmac
// query parameter and forwards to /app with the same query string.
func (h *Handlers) SignedEntry(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shop := q.Get("shop")
	if shop == "" {
		http.Error(w, "Missing shop parameter", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(shop, q.Get("host"), q.Get("timestamp"), q.Get("hmac")); err != nil {
		h.logger.Warn().Str("shop", shop).Msg("Rejected entry request with invalid signature")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	http.Redirect(w, r, "/app?"+r.URL.RawQuery, http.StatusFound)
}

// App serves the embedded app shell for installed shops and sends
// everyone else through the install flow.
func (h *Handlers) App(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		http.Error(w, "Missing shop parameter", http.StatusBadRequest)
		return
	}

	cred, err := h.credentials.Get(r.Context(), shop)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to look up credential")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if cred == nil {
		http.Redirect(w, r, "/install?shop="+url.QueryEscape(shop), http.StatusFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.publicDir, "index.html"))
}

// AuthCallback completes the OAuth flow and redirects back to the app in
// the shop admin.
func (h *Handlers) AuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shop := q.Get("shop")
	code := q.Get("code")
	state := q.Get("state")

	err := h.auth.CompleteCallback(r.Context(), shop, code, state)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMissingParameter):
		http.Error(w, "Missing required parameters", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrStateMismatch):
		http.Error(w, "Invalid state parameter", http.StatusUnauthorized)
		return
	default:
		h.logger.Error().Err(err).Str("shop", shop).Msg("OAuth callback failed")
		http.Error(w, "Error during authentication. Please try again.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("https://%s/admin/apps/%s", shop, h.apiKey), http.StatusFound)
}

// GenerateSitemap is the on-demand regeneration endpoint used by the app
// shell. Generation failures are reported in the body, not the status.
func (h *Handlers) GenerateSitemap(w http.ResponseWriter, r *http.Request) {
	shop := r.Header.Get(shopDomainHeader)
	if shop == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Shop not authenticated"})
		return
	}

	var body struct {
		Type string `json:"type"`
	}
	if r.Body != nil {
		// An empty or absent body means the default format.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	format, err := domain.ParseFormat(body.Type)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid sitemap type"})
		return
	}

	if err := h.sitemaps.Generate(r.Context(), shop, format); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Shop not authenticated"})
			return
		}
		h.logger.Error().Err(err).Str("shop", shop).Str("format", string(format)).Msg("On-demand generation failed")
		writeJSON(w, http.StatusOK, map[string]bool{"success": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
