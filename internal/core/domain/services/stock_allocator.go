package services

import (
	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// StockAllocator checks a checkout against buyback inventory and takes the stock.
//
// Allocation is all-or-nothing: every line is verified before any item is touched, so a
// single short line leaves all items unchanged. The persistent decrement is repeated by
// the repository with a conditional update, which catches races lost since loading.
type StockAllocator struct{}

func NewStockAllocator() StockAllocator {
	return StockAllocator{}
}

// Allocate takes the stock for lines from items and returns the priced order lines.
// Lines of the same item are merged.
func (StockAllocator) Allocate(lines []cart.Line, items map[kernel.UUID]*inventory.Item) ([]buybackorder.Line, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}

	merged := make(map[kernel.UUID]int, len(lines))
	var itemOrder []kernel.UUID
	for _, l := range lines {
		if _, seen := merged[l.ItemID]; !seen {
			itemOrder = append(itemOrder, l.ItemID)
		}
		merged[l.ItemID] += l.Quantity
	}

	for _, id := range itemOrder {
		item, ok := items[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("inventory item", id.String())
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if err := item.CheckAvailable(merged[id]); err != nil {
			return nil, err
		}
	}

	allocated := make([]buybackorder.Line, 0, len(itemOrder))
	for _, id := range itemOrder {
		item := items[id]
		if err := item.Take(merged[id]); err != nil {
			return nil, err
		}
		allocated = append(allocated, buybackorder.Line{
			ItemID:    id,
			Title:     item.Book().Title(),
			UnitPrice: item.SellingPrice(),
			Quantity:  merged[id],
		})
	}
	return allocated, nil
}
