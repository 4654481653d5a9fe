package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookDetails(t *testing.T) {
	t.Run("should normalize the isbn and trim text fields", func(t *testing.T) {
		b, err := kernel.NewBookDetails(" Clean Code ", "Robert C. Martin", "978-0-13-235088-4", "Prentice Hall", "1st", decimal.NewFromInt(599))

		require.NoError(t, err)
		assert.Equal(t, "Clean Code", b.Title())
		assert.Equal(t, "9780132350884", b.ISBN())
		assert.True(t, b.MRP().Equal(decimal.NewFromInt(599)))
		require.NoError(t, b.Validate())
	})

	t.Run("should accept a missing isbn and mrp", func(t *testing.T) {
		b, err := kernel.NewBookDetails("Untitled notes", "", "", "", "", decimal.Zero)

		require.NoError(t, err)
		assert.Empty(t, b.ISBN())
		assert.True(t, b.MRP().IsZero())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := kernel.NewBookDetails("", "", "12345", "", "", decimal.NewFromInt(-5))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "isbn")
		assert.Contains(t, err.Error(), "mrp")
	})

	t.Run("zero value should not validate", func(t *testing.T) {
		require.Error(t, kernel.BookDetails{}.Validate())
	})
}
