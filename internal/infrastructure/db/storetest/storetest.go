// Package storetest holds the behaviour every ports.Store implementation
// must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// Run exercises store's token and cart operations. store must start empty.
func Run(t *testing.T, store ports.Store) {
	t.Helper()

	t.Run("token lifecycle", func(t *testing.T) {
		ctx := context.Background()

		_, err := store.LoadToken(ctx)
		require.ErrorIs(t, err, domain.ErrKeyNotFound)

		require.NoError(t, store.SaveToken(ctx, "first"))
		require.NoError(t, store.SaveToken(ctx, "second"))
		token, err := store.LoadToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", token)

		require.NoError(t, store.DeleteToken(ctx))
		require.NoError(t, store.DeleteToken(ctx), "deleting twice is not an error")
		_, err = store.LoadToken(ctx)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("unknown identity has an empty cart", func(t *testing.T) {
		items, err := store.LoadCart(context.Background(), "nobody")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("carts are partitioned by identity", func(t *testing.T) {
		ctx := context.Background()
		alice := []domain.LineItem{
			{ProductID: "p1", Name: "Lamp", UnitPrice: 100, Quantity: 2, Image: "lamp.png"},
			{ProductID: "p2", Name: "Desk", UnitPrice: 250.5, Quantity: 1},
		}
		bob := []domain.LineItem{{ProductID: "p3", Name: "Chair", UnitPrice: 80, Quantity: 4}}

		require.NoError(t, store.SaveCart(ctx, "alice", alice))
		require.NoError(t, store.SaveCart(ctx, "bob", bob))

		got, err := store.LoadCart(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice, got, "items and their order survive a round trip")

		require.NoError(t, store.SaveCart(ctx, "alice", alice[:1]))
		got, err = store.LoadCart(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice[:1], got, "save replaces the whole cart")

		require.NoError(t, store.DeleteCart(ctx, "alice"))
		got, err = store.LoadCart(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = store.LoadCart(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, bob, got, "other partitions are untouched")
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(context.Background()))
	})
}
