// Package services provides domain services that orchestrate business operations
// across several aggregates of the marketplace. They hold no state and perform no I/O.
//
// The package includes:
//   - ShippingPolicy: the flat shipping fee and its free-shipping threshold
//   - OrderSplitter: turns a customer basket into one order per seller
//   - StockAllocator: checks a seller's checkout against buyback inventory stock
package services
