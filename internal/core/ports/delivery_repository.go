package ports

import (
	"context"

	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderRef locates the delivery paired with an order, by explicit
	// order ID when available, otherwise by shared order number. Returns
	// errs.ErrObjectNotFound (wrapped) when no counterpart exists.
	GetByOrderRef(ctx context.Context, orderID *kernel.UUID, orderNumber string) (*delivery.Delivery, error)

	// UpdateStatusGuarded performs the conditional status write, same
	// contract as OrderRepository.UpdateStatusGuarded.
	UpdateStatusGuarded(ctx context.Context, id kernel.UUID, expected status.Status, entry status.Change) error

	// GetOutOfSync retrieves up to limit deliveries whose status differs
	// from their paired order's status. Used by the reconciliation job to
	// repair propagation that did not complete.
	GetOutOfSync(ctx context.Context, limit int) ([]*delivery.Delivery, error)
}
