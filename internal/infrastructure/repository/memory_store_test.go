package repository

import (
	"context"
	"testing"

	"shopify-sitemap-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestMemoryCredentialStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore()

	cred, err := store.Get(ctx, "missing.myshopify.com")
	require.NoError(t, err)
	require.Nil(t, cred)

	err = store.Set(ctx, &domain.ShopCredential{ShopDomain: "a.myshopify.com", AccessToken: "tok-1"})
	require.NoError(t, err)

	cred, err = store.Get(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, cred)
	require.Equal(t, "tok-1", cred.AccessToken)
	require.False(t, cred.CreatedAt.IsZero())

	// Re-authentication overwrites the token but keeps the creation time.
	created := cred.CreatedAt
	err = store.Set(ctx, &domain.ShopCredential{ShopDomain: "a.myshopify.com", AccessToken: "tok-2"})
	require.NoError(t, err)

	cred, err = store.Get(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "tok-2", cred.AccessToken)
	require.Equal(t, created, cred.CreatedAt)

	err = store.Set(ctx, &domain.ShopCredential{ShopDomain: "b.myshopify.com", AccessToken: "tok-3"})
	require.NoError(t, err)

	shops, err := store.ListShops(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a.myshopify.com", "b.myshopify.com"}, shops)

	require.NoError(t, store.Delete(ctx, "a.myshopify.com"))
	cred, err = store.Get(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.Nil(t, cred)
}

func TestMemoryCredentialStoreRejectsEmptyDomain(t *testing.T) {
	store := NewMemoryCredentialStore()
	require.Error(t, store.Set(context.Background(), &domain.ShopCredential{AccessToken: "tok"}))
	require.Error(t, store.Set(context.Background(), nil))
}

func TestMemoryStateStoreConsumeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	require.NoError(t, store.Set(ctx, "a.myshopify.com", "state-1"))

	state, err := store.Consume(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "state-1", state)

	// Consumed exactly once; a second read finds nothing.
	state, err = store.Consume(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.Empty(t, state)
}

func TestMemoryStateStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	require.NoError(t, store.Set(ctx, "a.myshopify.com", "old"))
	require.NoError(t, store.Set(ctx, "a.myshopify.com", "new"))

	state, err := store.Consume(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "new", state)
}

func TestMemoryStateStoreScopedPerShop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	require.NoError(t, store.Set(ctx, "a.myshopify.com", "state-a"))
	require.NoError(t, store.Set(ctx, "b.myshopify.com", "state-b"))

	state, err := store.Consume(ctx, "b.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "state-b", state)

	state, err = store.Consume(ctx, "a.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "state-a", state)
}
