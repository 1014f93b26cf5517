package sitemap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"shopify-sitemap-service/internal/domain"
)

// FileStore writes sitemap artifacts into a public static directory as
// {shop}-sitemap.{xml|html}, overwriting any previous artifact.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Persist(_ context.Context, shopDomain string, format domain.Format, data []byte) error {
	if !domain.IsValidShopDomain(shopDomain) {
		return fmt.Errorf("%w: refusing artifact path for shop %q", domain.ErrPersistFailed, shopDomain)
	}

	name := fmt.Sprintf("%s-sitemap.%s", shopDomain, format.Extension())
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}
