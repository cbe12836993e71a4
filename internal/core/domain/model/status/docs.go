// Package status defines the closed lifecycle vocabulary shared by orders
// and deliveries, the allowed transition graph between statuses, and the
// append-only ledger entries that record every accepted transition.
//
// The transition graph is a strict forward-only chain with one early exit
// (cancellation from Pending). All parsing of client-supplied status tokens
// goes through FromString, which normalizes case and separators on ingress;
// the canonical display string is what gets persisted and returned.
package status
