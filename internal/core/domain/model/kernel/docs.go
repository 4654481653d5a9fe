// Package kernel provides the shared domain primitives of the marketplace engine.
//
// The package includes:
//   - UUID: A value object for entity identifiers with validation and comparison
//   - Actor and Role: the caller identity every mutating operation is checked against
//   - Address: a validated shipping/pickup address
//   - TrackingNumber: the shipment reference assigned when goods leave the sender
//   - Money helpers: price validation and rounding on shopspring/decimal
//
// These primitives are immutable and safe for concurrent use.
package kernel
