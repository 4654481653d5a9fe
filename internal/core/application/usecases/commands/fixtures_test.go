package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/core/domain/model/returns"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("221B Baker Street")
	require.NoError(t, err)
	return a
}

func newPayment(t *testing.T) kernel.PaymentMethod {
	t.Helper()
	p, err := kernel.NewPaymentMethod("cod")
	require.NoError(t, err)
	return p
}

func newBook(t *testing.T, mrp int64) kernel.BookDetails {
	t.Helper()
	b, err := kernel.NewBookDetails("Dune", "Frank Herbert", "978-0441013593", "Ace", "1st", decimal.NewFromInt(mrp))
	require.NoError(t, err)
	return b
}

// restoreOrder builds an order of buyer and seller in status with one line of
// two copies at 300 plus one line of one copy at 600, shipping 0.
func restoreOrder(t *testing.T, buyer, seller kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	a, err := order.NewItem(kernel.NewUUID(), "Dune", decimal.NewFromInt(300), 2)
	require.NoError(t, err)
	b, err := order.NewItem(kernel.NewUUID(), "Emma", decimal.NewFromInt(600), 1)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:              kernel.NewUUID(),
		BuyerID:         buyer,
		SellerID:        seller,
		Items:           []order.Item{a, b},
		ShippingFee:     decimal.Zero,
		Status:          status,
		ShippingAddress: newAddress(t),
		PaymentMethod:   newPayment(t),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		Version:         3,
	})
	require.NoError(t, err)
	return o
}

func pendingBuyback(t *testing.T, submitter kernel.UUID, mrp int64) *buyback.BuybackRequest {
	t.Helper()
	r, err := buyback.NewBuybackRequest(kernel.NewUUID(), submitter, newBook(t, mrp), quote.BestConditions(), time.Now())
	require.NoError(t, err)
	return r
}

func listedItem(t *testing.T, price int64, stock int) *inventory.Item {
	t.Helper()
	item, err := inventory.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), newBook(t, 500),
		decimal.NewFromInt(price), stock, time.Now())
	require.NoError(t, err)
	return item
}

func returnInStatus(t *testing.T, o *order.Order, status returns.Status, updatedAt time.Time) *returns.ReturnRequest {
	t.Helper()
	items := o.Items()
	r, err := returns.RestoreReturnRequest(returns.Snapshot{
		ID:         kernel.NewUUID(),
		OrderID:    o.ID(),
		CustomerID: o.BuyerID(),
		SellerID:   o.SellerID(),
		Items: []returns.Item{{
			BookID:    items[0].BookID(),
			Title:     items[0].Title(),
			UnitPrice: items[0].UnitPrice(),
			Quantity:  1,
		}, {
			BookID:    items[1].BookID(),
			Title:     items[1].Title(),
			UnitPrice: items[1].UnitPrice(),
			Quantity:  1,
		}},
		Reason:    "wrong edition",
		Status:    status,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
		Version:   2,
	})
	require.NoError(t, err)
	return r
}
