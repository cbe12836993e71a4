package status

import (
	"errors"
	"fmt"
	"strings"

	"freshmarket/internal/pkg/errs"
)

var (
	// ErrIllegalTransition indicates that the requested status is not reachable
	// from the record's current status.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrAlreadyInStatus indicates a no-op transition request. It is a soft
	// condition: callers racing on the same update should treat it as success.
	ErrAlreadyInStatus = errors.New("record is already in the requested status")
)

// Status represents the lifecycle state shared by orders and deliveries.
// It implements a forward-only state machine with a single early exit:
//
//	Pending ──> Picked Up ──> In Transit ──> Out for Delivery ──> Delivered
//	   │
//	   └──> Cancelled
//
// Delivered and Cancelled are terminal. There is no undo transition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned when an order is placed.
	Pending

	// PickedUp indicates the fulfiller has collected the goods.
	PickedUp

	// InTransit indicates the goods are on their way.
	InTransit

	// OutForDelivery indicates the goods are on the final leg to the customer.
	OutForDelivery

	// Delivered indicates the goods reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before pickup. Terminal.
	Cancelled
)

// getStatusStrings returns the canonical display form of every status.
// The display form is what gets stored and returned to clients.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		PickedUp:       "Picked Up",
		InTransit:      "In Transit",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getValidStatusStrings returns only the statuses valid for records.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		PickedUp:       "Picked Up",
		InTransit:      "In Transit",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// nextStatuses returns the allowed transition graph: for each status, the
// set of statuses a record may move to next.
func nextStatuses() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {PickedUp, Cancelled},
		PickedUp:       {InTransit},
		InTransit:      {OutForDelivery},
		OutForDelivery: {Delivered},
		Delivered:      {},
		Cancelled:      {},
	}
}

// FromString parses a status from client input. Matching is case-insensitive
// and separator-insensitive ("picked_up", "Picked-Up" and "picked up" all
// parse to PickedUp). Normalization happens here, at ingress, and nowhere
// else: the canonical display form is what gets stored.
func FromString(s string) (Status, error) {
	normalized := normalize(s)
	for status, display := range getValidStatusStrings() {
		if normalize(display) == normalized {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized status", s))
}

func normalize(s string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(replaced), " "))
}

// Validate checks if the Status value is valid for a record.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical display form of the status.
// Implements fmt.Stringer; safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(nextStatuses()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the transition graph contains an edge
// from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range nextStatuses()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates a requested transition against the graph and
// returns the new status on success.
//
// Returns:
//   - ErrAlreadyInStatus if next equals s (soft, idempotent for callers)
//   - an IllegalTransitionError if the graph has no edge from s to next
//   - (next, nil) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if next == s {
		return Unknown, ErrAlreadyInStatus
	}

	if !s.CanTransitionTo(next) {
		return Unknown, NewIllegalTransitionError(s, next)
	}

	return next, nil
}

// IllegalTransitionError reports a transition request with no edge in the
// status graph, including both endpoints for diagnostics.
type IllegalTransitionError struct {
	From Status
	To   Status
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given edge.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
