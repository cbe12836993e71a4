// Package order implements the Order aggregate: the commercial side of a
// purchase. An order owns its line items, totals, delivery address, and an
// append-only status ledger. The fulfillment-side mirror lives in the
// delivery package; the two are kept in step by the application layer.
package order
