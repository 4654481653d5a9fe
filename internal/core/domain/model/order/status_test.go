package order_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending, order.Accepted, order.Packed, order.Shipped,
		order.OutForDelivery, order.Delivered, order.Rejected, order.Cancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses() {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		require.Error(t, order.Status(42).Validate())
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected order.Status
	}{
		{"new", order.Pending},
		{"pending", order.Pending},
		{"Pending", order.Pending},
		{"accepted", order.Accepted},
		{"processing", order.Accepted},
		{"Processing", order.Accepted},
		{"out_for_delivery", order.OutForDelivery},
		{"Out for delivery", order.OutForDelivery},
		{" DELIVERED ", order.Delivered},
		{"canceled", order.Cancelled},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := order.ParseStatus(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}

	t.Run("should reject unknown spellings", func(t *testing.T) {
		_, err := order.ParseStatus("lost")

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.Label())
	assert.Equal(t, "Processing", order.Accepted.Label())
	assert.Equal(t, "Out for delivery", order.OutForDelivery.Label())
	assert.Equal(t, "Unknown", order.Unknown.Label())
	assert.Equal(t, "out-for-delivery", order.OutForDelivery.String())
}

func TestStatus_Transitions(t *testing.T) {
	type step func(order.Status) (order.Status, error)
	steps := map[string]step{
		"accept":           order.Status.Accept,
		"reject":           order.Status.Reject,
		"pack":             order.Status.Pack,
		"ship":             order.Status.Ship,
		"out-for-delivery": order.Status.MarkOutForDelivery,
		"deliver":          order.Status.Deliver,
		"cancel":           order.Status.Cancel,
	}
	legal := map[order.Status]map[string]order.Status{
		order.Pending:        {"accept": order.Accepted, "reject": order.Rejected, "cancel": order.Cancelled},
		order.Accepted:       {"accept": order.Accepted, "pack": order.Packed, "cancel": order.Cancelled},
		order.Packed:         {"pack": order.Packed, "ship": order.Shipped, "cancel": order.Cancelled},
		order.Shipped:        {"ship": order.Shipped, "out-for-delivery": order.OutForDelivery},
		order.OutForDelivery: {"out-for-delivery": order.OutForDelivery, "deliver": order.Delivered},
		order.Delivered:      {"deliver": order.Delivered},
		order.Rejected:       {"reject": order.Rejected},
		order.Cancelled:      {"cancel": order.Cancelled},
	}

	for _, from := range allStatuses() {
		for name, fn := range steps {
			t.Run(fmt.Sprintf("%s from %s", name, from), func(t *testing.T) {
				next, err := fn(from)

				if expected, ok := legal[from][name]; ok {
					require.NoError(t, err)
					assert.Equal(t, expected, next)
					return
				}
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrStateConflict)
				assert.Equal(t, order.Unknown, next)
			})
		}
	}
}

func TestStatus_IsCancellable(t *testing.T) {
	assert.True(t, order.Pending.IsCancellable())
	assert.True(t, order.Accepted.IsCancellable())
	assert.True(t, order.Packed.IsCancellable())
	assert.False(t, order.Shipped.IsCancellable())
	assert.False(t, order.Delivered.IsCancellable())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Rejected.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Shipped.IsTerminal())
}
