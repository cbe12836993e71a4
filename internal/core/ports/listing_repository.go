package ports

import (
	"context"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/listing"
)

// ListingRepository defines the catalog operations the order flow needs.
type ListingRepository interface {
	// Get retrieves a listing by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error)

	// DecrementStock atomically reduces a listing's available quantity.
	// The decrement is conditional on sufficient stock remaining at write
	// time; returns errs.ErrInsufficientStock otherwise. This is a simple
	// decrement, not a reservation.
	DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error
}
