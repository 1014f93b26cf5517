package domain

import "time"

// OAuthState is the anti-CSRF token issued when an install redirect is
// built. At most one state is pending per shop; issuing a new one
// overwrites the previous. A state is consumed exactly once during the
// OAuth callback, whether or not the comparison succeeds.
type OAuthState struct {
	ShopDomain string    `json:"shop_domain"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

// StateTTL bounds how long a pending install may sit between the
// authorize redirect and the callback.
const StateTTL = 10 * time.Minute
