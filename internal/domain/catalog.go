package domain

// CatalogEntry is a single product, collection or page as far as the
// sitemap cares: a URL-safe handle and a display title.
type CatalogEntry struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// CatalogSnapshot is the catalog of a shop at one point in time. It is
// built fresh per generation and never cached; a failed fetch of any of
// the three lists aborts the whole snapshot.
type CatalogSnapshot struct {
	Products    []CatalogEntry `json:"products"`
	Collections []CatalogEntry `json:"collections"`
	Pages       []CatalogEntry `json:"pages"`
}
