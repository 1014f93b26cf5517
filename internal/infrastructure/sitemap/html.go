package sitemap

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"shopify-sitemap-service/internal/domain"
)

//go:embed templates/sitemap.html.tmpl
var templateFiles embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFiles, "templates/sitemap.html.tmpl"))

type htmlLink struct {
	URL   string
	Title string
}

type htmlGroup struct {
	Name  string
	Links []htmlLink
}

type htmlPage struct {
	Shop    string
	HomeURL string
	Groups  []htmlGroup
}

// renderHTML builds the HTML index variant of the sitemap. All dynamic
// values go through html/template, so titles and handles are escaped.
func renderHTML(shop string, snapshot *domain.CatalogSnapshot) ([]byte, error) {
	page := htmlPage{
		Shop:    shop,
		HomeURL: homepageURL(shop),
		Groups: []htmlGroup{
			{Name: "Products", Links: links(shop, "products", snapshot.Products)},
			{Name: "Collections", Links: links(shop, "collections", snapshot.Collections)},
			{Name: "Pages", Links: links(shop, "pages", snapshot.Pages)},
		},
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render html sitemap: %w", err)
	}
	return buf.Bytes(), nil
}

func links(shop, segment string, entries []domain.CatalogEntry) []htmlLink {
	out := make([]htmlLink, 0, len(entries))
	for _, e := range entries {
		out = append(out, htmlLink{
			URL:   entryURL(shop, segment, e.Handle),
			Title: e.Title,
		})
	}
	return out
}
