package sitemap

import (
	"fmt"

	"shopify-sitemap-service/internal/domain"
	"shopify-sitemap-service/internal/ports"
)

// Renderer produces sitemap documents from a catalog snapshot. Output is
// deterministic: the same snapshot renders to byte-identical documents.
type Renderer struct{}

func NewRenderer() ports.Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(shop string, format domain.Format, snapshot *domain.CatalogSnapshot) ([]byte, error) {
	switch format {
	case domain.FormatXML:
		return renderXML(shop, snapshot)
	case domain.FormatHTML:
		return renderHTML(shop, snapshot)
	default:
		return nil, fmt.Errorf("unknown sitemap format %q", format)
	}
}

func homepageURL(shop string) string {
	return "https://" + shop
}

func entryURL(shop, segment, handle string) string {
	return fmt.Sprintf("https://%s/%s/%s", shop, segment, handle)
}
