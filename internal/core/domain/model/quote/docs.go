// Package quote implements the buyback quote engine: a pure function turning a used
// book's list price (MRP) and five condition answers into the platform's offer price.
//
// Pricing rules:
//   - The base price is the MRP, or DefaultBasePrice when the MRP is absent
//   - The multiplier starts at 0.40 of the base price
//   - Every condition axis subtracts its tier's deduction
//   - The multiplier is clamped to [0.05, 0.40]
//   - The offer is base × multiplier rounded to a whole currency unit
//
// Unknown or empty condition answers fall back to the best tier of their axis, so the
// engine never fails and can quote before anything is persisted.
package quote
