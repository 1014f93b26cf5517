package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"shopify-sitemap-service/internal/domain"
)

// RequestVerifier checks the hmac query parameter Shopify attaches to
// signed app entry requests. The signed message is the canonical
// shop=&host=&timestamp= string; digests are compared in constant time.
type RequestVerifier struct {
	secret []byte
}

func NewRequestVerifier(apiSecret string) *RequestVerifier {
	return &RequestVerifier{secret: []byte(apiSecret)}
}

// Verify recomputes the HMAC-SHA256 hex digest over the canonical message
// and compares it to signature. Returns ErrInvalidSignature on mismatch.
func (v *RequestVerifier) Verify(shop, host, timestamp, signature string) error {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "shop=%s&host=%s&timestamp=%s", shop, host, timestamp)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}
	return nil
}
