package listingrepo

import (
	"context"
	"errors"
	"fmt"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/listing"
	"freshmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormListingRepository implements ListingRepository using GORM.
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GORM listing repository.
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// Get retrieves a listing by ID.
func (r *GormListingRepository) Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ListingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("listing", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DecrementStock reduces a listing's available quantity in one conditional
// statement. The write only lands while enough stock remains, which is what
// prevents overselling when two orders race on the same listing.
func (r *GormListingRepository) DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE listings
		SET available_qty = available_qty - ?
		WHERE id = ? AND available_qty >= ?
	`, quantity, id.Bytes(), quantity)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: listing %s cannot cover %d units", errs.ErrInsufficientStock, id, quantity)
	}

	return nil
}
