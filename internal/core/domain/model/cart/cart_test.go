package cart_test

import (
	"testing"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Add(t *testing.T) {
	t.Run("should merge quantities of the same item", func(t *testing.T) {
		c, err := cart.New(kernel.NewUUID())
		require.NoError(t, err)
		item := kernel.NewUUID()

		require.NoError(t, c.Add(item, 1, 3))
		require.NoError(t, c.Add(item, 2, 3))

		assert.Equal(t, 3, c.Quantity(item))
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("should reject quantities beyond the stock", func(t *testing.T) {
		c, _ := cart.New(kernel.NewUUID())
		item := kernel.NewUUID()
		require.NoError(t, c.Add(item, 2, 2))

		err := c.Add(item, 1, 2)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 2, c.Quantity(item))
	})

	t.Run("should reject a non positive quantity", func(t *testing.T) {
		c, _ := cart.New(kernel.NewUUID())

		err := c.Add(kernel.NewUUID(), 0, 5)

		require.Error(t, err)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_RemoveAndClear(t *testing.T) {
	c, _ := cart.New(kernel.NewUUID())
	first, second := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, c.Add(first, 1, 1))
	require.NoError(t, c.Add(second, 1, 1))

	c.Remove(first)
	assert.Equal(t, 0, c.Quantity(first))
	assert.Equal(t, 1, c.Quantity(second))

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestRestore(t *testing.T) {
	item := kernel.NewUUID()

	c, err := cart.Restore(kernel.NewUUID(), []cart.Line{{ItemID: item, Quantity: 2}, {ItemID: kernel.NewUUID(), Quantity: 0}})

	require.NoError(t, err)
	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Quantity(item))

	_, err = cart.Restore(kernel.UUID{}, nil)
	require.Error(t, err)
}
