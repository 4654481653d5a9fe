// Package buyback models a customer's offer to sell a used book to the platform.
//
// A BuybackRequest is priced by the quote engine at submission and then decided by an
// admin: approved (with a selling price, and a reason whenever that price differs from
// the offer) or rejected. Both outcomes are terminal. Approval is what allows an
// inventory item to be materialised from the request.
package buyback
