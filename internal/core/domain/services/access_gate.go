package services

import (
	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"
)

// Record is the view of an order or delivery the access gate needs: who
// purchased it, who fulfills it, and the denormalized names kept for
// records whose structured references are missing.
type Record interface {
	PurchaserRef() *kernel.UUID
	FulfillerRef() *kernel.UUID
	PurchaserName() string
	FulfillerName() string
}

// MatchKind classifies how an actor relates to a record. The distinction
// between structural and name-fallback matches exists so the fallback can
// be disabled later without restructuring the gate.
type MatchKind int

const (
	// NoMatch means the actor has no relationship to the record.
	NoMatch MatchKind = iota

	// StructuralMatch means the actor's ID matches the record's purchaser
	// or fulfiller reference.
	StructuralMatch

	// NameFallbackMatch means the actor's display name matches a
	// denormalized name on a record whose structured reference is missing.
	// This is weak authorization, kept for legacy records only.
	NameFallbackMatch

	// AdminOverride means the actor is an administrator; admins bypass
	// relationship checks entirely.
	AdminOverride
)

// Granted reports whether the match kind permits access.
func (k MatchKind) Granted() bool {
	return k != NoMatch
}

// AccessGate decides whether an actor may read or mutate a record. It is a
// pure predicate with no side effects, used to gate single-record
// operations; list queries apply the same matching rule in SQL.
type AccessGate struct{}

// NewAccessGate creates a new AccessGate instance.
func NewAccessGate() AccessGate {
	return AccessGate{}
}

// Evaluate classifies the actor's relationship to the record.
//
// Precedence: AdminOverride, then StructuralMatch on either reference, then
// NameFallbackMatch for a side whose structured reference is absent. An
// unconstructed actor never matches.
func (AccessGate) Evaluate(a actor.Actor, rec Record) MatchKind {
	if a.Validate() != nil || rec == nil {
		return NoMatch
	}

	if a.IsAdmin() {
		return AdminOverride
	}

	if ref := rec.PurchaserRef(); ref != nil && ref.IsEqual(a.ID()) {
		return StructuralMatch
	}
	if ref := rec.FulfillerRef(); ref != nil && ref.IsEqual(a.ID()) {
		return StructuralMatch
	}

	if a.Name() != "" {
		if rec.PurchaserRef() == nil && rec.PurchaserName() == a.Name() {
			return NameFallbackMatch
		}
		if rec.FulfillerRef() == nil && rec.FulfillerName() == a.Name() {
			return NameFallbackMatch
		}
	}

	return NoMatch
}

// CanAccess reports whether the actor may read or mutate the record.
func (g AccessGate) CanAccess(a actor.Actor, rec Record) bool {
	return g.Evaluate(a, rec).Granted()
}

// ValidateStatusChange is the pure transition decision: given a record's
// current status, the requested status, and the actor's relationship to the
// record, it returns nil to allow or an error explaining the denial.
//
// Any granted relationship may drive any legal transition; there is no
// per-transition role restriction (a customer can advance their own order
// all the way to Delivered). Tightening this is a known open item and would
// be a switch on MatchKind here.
//
// Returns:
//   - errs.ErrNotFoundOrUnauthorized when the relationship is NoMatch
//   - status.ErrAlreadyInStatus for a no-op request (soft)
//   - status.ErrIllegalTransition when the graph has no such edge
func ValidateStatusChange(current, requested status.Status, match MatchKind) error {
	if !match.Granted() {
		return errs.ErrNotFoundOrUnauthorized
	}

	_, err := current.TransitionTo(requested)
	return err
}
