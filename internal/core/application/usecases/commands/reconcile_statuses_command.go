package commands

import (
	"errors"

	"freshmarket/internal/pkg/errs"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrReconcileStatusesCommandIsNotConstructed = errors.New(
		"ReconcileStatusesCommand must be created via NewReconcileStatusesCommand constructor",
	)
)

// ReconcileStatusesCommand represents a request to repair order/delivery
// pairs whose statuses drifted apart after incomplete propagation.
type ReconcileStatusesCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewReconcileStatusesCommand creates a reconciliation command.
// limit caps how many drifted pairs a single run repairs.
func NewReconcileStatusesCommand(limit int) (ReconcileStatusesCommand, error) {
	if limit <= 0 {
		return ReconcileStatusesCommand{}, errs.NewValueIsInvalidError("limit")
	}

	return ReconcileStatusesCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStatusesCommandIsNotConstructed)
}

// Limit returns the maximum number of pairs to repair in one run.
func (c ReconcileStatusesCommand) Limit() int {
	return c.limit
}
