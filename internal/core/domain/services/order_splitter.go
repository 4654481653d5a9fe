package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BasketLine is one book and quantity of a customer's basket.
type BasketLine struct {
	BookID   kernel.UUID
	Quantity int
}

// OrderSplitter turns a customer basket into Pending orders, one per seller.
//
// Business rules:
//   - Every book must be listed and have the requested quantity in stock
//   - Prices and sellers come from the listings, never from the caller
//   - Repeated lines of the same book are merged
//   - Each order pays its own shipping fee according to the ShippingPolicy
//
// Example usage:
//
//	splitter := services.NewOrderSplitter(policy)
//	orders, err := splitter.Split(buyerID, basket, books, address, payment, time.Now())
//	if err != nil {
//	    // unknown book, capacity error or invalid basket
//	}
type OrderSplitter struct {
	policy ShippingPolicy
}

func NewOrderSplitter(policy ShippingPolicy) OrderSplitter {
	return OrderSplitter{policy: policy}
}

// Split builds the orders for basket. books must contain every listing the basket
// references. Orders come back in the order their sellers first appear in the basket.
func (s OrderSplitter) Split(
	buyerID kernel.UUID,
	basket []BasketLine,
	books map[kernel.UUID]catalog.Book,
	address kernel.Address,
	payment kernel.PaymentMethod,
	now time.Time,
) ([]*order.Order, error) {
	if len(basket) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	merged, bookOrder := mergeBasket(basket)

	var sellers []kernel.UUID
	itemsBySeller := make(map[kernel.UUID][]order.Item)
	for _, bookID := range bookOrder {
		book, ok := books[bookID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("book", bookID.String())
		}
		quantity := merged[bookID]
		if err := book.CheckAvailable(quantity); err != nil {
			return nil, err
		}
		item, err := order.NewItem(book.ID(), book.Title(), book.Price(), quantity)
		if err != nil {
			return nil, fmt.Errorf("book %s: %w", bookID, err)
		}
		if _, seen := itemsBySeller[book.SellerID()]; !seen {
			sellers = append(sellers, book.SellerID())
		}
		itemsBySeller[book.SellerID()] = append(itemsBySeller[book.SellerID()], item)
	}

	orders := make([]*order.Order, 0, len(sellers))
	for _, sellerID := range sellers {
		items := itemsBySeller[sellerID]
		fee := s.policy.Fee(subtotal(items))
		o, err := order.NewOrder(kernel.NewUUID(), buyerID, sellerID, items, fee, address, payment, now)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func mergeBasket(basket []BasketLine) (map[kernel.UUID]int, []kernel.UUID) {
	merged := make(map[kernel.UUID]int, len(basket))
	var bookOrder []kernel.UUID
	for _, line := range basket {
		if _, seen := merged[line.BookID]; !seen {
			bookOrder = append(bookOrder, line.BookID)
		}
		merged[line.BookID] += line.Quantity
	}
	return merged, bookOrder
}

func subtotal(items []order.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
