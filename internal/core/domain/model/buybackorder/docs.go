// Package buybackorder models a seller's checkout of buyback inventory and the
// platform-run fulfilment of that purchase, from pickup to delivery.
//
// Cancelling restores the stock of every line; the stock itself lives in the
// inventory package and is restored by the caller in the same unit of work.
package buybackorder
