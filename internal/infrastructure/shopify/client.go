package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// listPageLimit is the Shopify REST page maximum. Catalog fetches are
// bounded at one page of this size per resource type.
const listPageLimit = 250

type client struct {
	apiKey      string
	apiSecret   string
	scopes      string
	redirectURI string
	apiVersion  string
	app         goshopify.App
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewClient creates a Shopify client adapter. redirectURI is the OAuth
// callback URL registered for the app; timeout bounds every outbound call.
func NewClient(apiKey, apiSecret, scopes, redirectURI, apiVersion string, timeout time.Duration, logger zerolog.Logger) ports.ShopifyClient {
	app := goshopify.App{
		ApiKey:    apiKey,
		ApiSecret: apiSecret,
		Scope:     scopes,
	}
	return &client{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		scopes:      scopes,
		redirectURI: redirectURI,
		apiVersion:  apiVersion,
		app:         app,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// createClient is a helper to create a goshopify client
func (c *client) createClient(shopDomain string, accessToken string) (*goshopify.Client, error) {
	var opts []goshopify.Option
	if c.apiVersion != "" {
		opts = append(opts, goshopify.WithVersion(c.apiVersion))
	}
	client, err := goshopify.NewClient(c.app, shopDomain, accessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Authentication

func (c *client) AuthorizeURL(shop string, state string) string {
	return fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shop,
		c.apiKey,
		url.QueryEscape(c.scopes),
		url.QueryEscape(c.redirectURI),
		url.QueryEscape(state),
	)
}

func (c *client) ExchangeToken(ctx context.Context, shop string, code string) (string, error) {
	tokenURL := fmt.Sprintf("https://%s/admin/oauth/access_token", shop)

	body, err := json.Marshal(map[string]string{
		"client_id":     c.apiKey,
		"client_secret": c.apiSecret,
		"code":          code,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to exchange token: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		Scope       string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResponse.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}

	c.logger.Info().
		Str("shop", shop).
		Str("granted_scopes", tokenResponse.Scope).
		Msg("OAuth token exchange completed")

	return tokenResponse.AccessToken, nil
}

// Catalog API

func (c *client) ListProducts(ctx context.Context, shopDomain string, accessToken string) ([]domain.CatalogEntry, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	products, err := client.Product.List(ctx, goshopify.ListOptions{Limit: listPageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	entries := make([]domain.CatalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, domain.CatalogEntry{Handle: p.Handle, Title: p.Title})
	}
	return entries, nil
}

// ListCollections returns custom and smart collections together; both
// resolve to /collections/{handle} on the storefront.
func (c *client) ListCollections(ctx context.Context, shopDomain string, accessToken string) ([]domain.CatalogEntry, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	custom, err := client.CustomCollection.List(ctx, goshopify.ListOptions{Limit: listPageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list custom collections: %w", err)
	}
	smart, err := client.SmartCollection.List(ctx, goshopify.ListOptions{Limit: listPageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list smart collections: %w", err)
	}
	entries := make([]domain.CatalogEntry, 0, len(custom)+len(smart))
	for _, col := range custom {
		entries = append(entries, domain.CatalogEntry{Handle: col.Handle, Title: col.Title})
	}
	for _, col := range smart {
		entries = append(entries, domain.CatalogEntry{Handle: col.Handle, Title: col.Title})
	}
	return entries, nil
}

func (c *client) ListPages(ctx context.Context, shopDomain string, accessToken string) ([]domain.CatalogEntry, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	pages, err := client.Page.List(ctx, goshopify.ListOptions{Limit: listPageLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	entries := make([]domain.CatalogEntry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, domain.CatalogEntry{Handle: p.Handle, Title: p.Title})
	}
	return entries, nil
}
