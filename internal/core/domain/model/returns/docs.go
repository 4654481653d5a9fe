// Package returns models a customer's request to send back items of a delivered order.
//
// The workflow is pending-admin → approved-by-admin → refund-issued → completed, with
// rejected-by-admin as the alternative outcome of the admin review. An order may have
// several returns over time but only one active at once, and together they can never
// return more units of a line than were delivered.
package returns
