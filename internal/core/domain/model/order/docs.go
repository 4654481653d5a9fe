// Package order provides the Order aggregate: a customer purchase of catalog books
// from a single seller, and the state machine that governs its fulfilment.
//
// The package includes:
//   - Order: the aggregate root holding lines, price totals, address and status
//   - Item: an order line with the price snapshot taken at placement
//   - Status: the lifecycle state machine, with ParseStatus for synonym spellings
//   - Action: the caller-facing transition names and their authorization rules
//
// Key business rules:
//   - The seller accepts, rejects (with a reason), packs and ships
//   - A delivery partner, or the seller, signals out-for-delivery and delivered
//   - The buyer may cancel while the order has not shipped
//   - Transitions are idempotent; skipping a state is a state conflict
//   - The total is derived from the lines and is never taken from a caller
package order
