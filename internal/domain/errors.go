package domain

import "errors"

var (
	ErrMissingParameter    = errors.New("missing or invalid parameter")
	ErrInvalidSignature    = errors.New("invalid request signature")
	ErrStateMismatch       = errors.New("oauth state mismatch")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrUpstreamFetchFailed = errors.New("upstream catalog fetch failed")
	ErrPersistFailed       = errors.New("failed to persist sitemap artifact")
	ErrUnauthenticated     = errors.New("shop not authenticated")
)
