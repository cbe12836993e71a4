package ports

import (
	"context"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// UpdateStatusGuarded performs the conditional status write: set the new
	// status and append the ledger entry only if the stored status still
	// equals expected, all as one indivisible statement. Returns
	// errs.ErrStatusConflict when the precondition no longer holds, which
	// means a concurrent caller advanced the record first.
	UpdateStatusGuarded(ctx context.Context, id kernel.UUID, expected status.Status, entry status.Change) error
}
