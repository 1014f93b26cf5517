package sitemap

import (
	"encoding/xml"
	"fmt"

	"shopify-sitemap-service/internal/domain"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Fixed per-section metadata of the sitemap protocol output. These are
// constants of the app, not computed from the catalog.
const (
	homePriority       = "1.0"
	productPriority    = "0.8"
	collectionPriority = "0.7"
	pagePriority       = "0.5"

	freqDaily  = "daily"
	freqWeekly = "weekly"
)

type xmlURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

// renderXML builds a sitemap-protocol document: the homepage entry first,
// then one entry per product, collection and page.
func renderXML(shop string, snapshot *domain.CatalogSnapshot) ([]byte, error) {
	set := xmlURLSet{
		Xmlns: sitemapNamespace,
		URLs: []xmlURL{
			{Loc: homepageURL(shop), ChangeFreq: freqDaily, Priority: homePriority},
		},
	}
	for _, p := range snapshot.Products {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        entryURL(shop, "products", p.Handle),
			ChangeFreq: freqDaily,
			Priority:   productPriority,
		})
	}
	for _, c := range snapshot.Collections {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        entryURL(shop, "collections", c.Handle),
			ChangeFreq: freqDaily,
			Priority:   collectionPriority,
		})
	}
	for _, p := range snapshot.Pages {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        entryURL(shop, "pages", p.Handle),
			ChangeFreq: freqWeekly,
			Priority:   pagePriority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
