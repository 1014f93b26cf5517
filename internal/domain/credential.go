package domain

import (
	"regexp"
	"time"
)

// ShopCredential holds the access token issued for a shop during OAuth.
// Tokens are opaque and do not expire unless the merchant uninstalls the app.
type ShopCredential struct {
	ShopDomain  string    `json:"shop_domain" bson:"domain"`
	AccessToken string    `json:"access_token" bson:"access_token"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.-]+$`)

// IsValidShopDomain reports whether s looks like a storefront domain.
// Shop domains end up in file names and URLs, so anything containing
// path separators or whitespace is rejected.
func IsValidShopDomain(s string) bool {
	return shopDomainPattern.MatchString(s)
}
