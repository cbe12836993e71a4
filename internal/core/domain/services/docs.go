// Package services provides domain services that implement business
// decisions spanning multiple aggregates.
//
// The package includes:
//   - AccessGate: classifies an actor's relationship to an order or
//     delivery record and gates reads and mutations on it
//   - ValidateStatusChange: the pure allow/deny decision for a requested
//     status transition, combining the gate's verdict with the status graph
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
