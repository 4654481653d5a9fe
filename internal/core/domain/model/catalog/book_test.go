package catalog_test

import (
	"testing"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreBook(t *testing.T) {
	t.Run("should build a listing", func(t *testing.T) {
		b, err := catalog.RestoreBook(kernel.NewUUID(), kernel.NewUUID(), "Dune", decimal.NewFromInt(399), 4)

		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title())
		assert.NoError(t, b.CheckAvailable(4))
		assert.ErrorIs(t, b.CheckAvailable(5), errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(b.CheckAvailable(0)))
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := catalog.RestoreBook(kernel.UUID{}, kernel.NewUUID(), "", decimal.Zero, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "price")
		assert.Contains(t, err.Error(), "stock")
	})
}
