// Package listingrepo persists the catalog slice the order flow reads:
// listing identity, owner, price, and available stock.
package listingrepo

import (
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/listing"

	"github.com/google/uuid"
)

// ListingDTO represents the database structure for catalog listings.
type ListingDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;index"`
	OwnerName      string
	Name           string
	UnitPriceCents int64
	AvailableQty   int
}

// TableName specifies the database table name for listing entities.
func (ListingDTO) TableName() string {
	return "listings"
}

// FromDomain converts a listing to its database representation. Exported for
// test fixtures; the order flow itself never writes listings except through
// DecrementStock.
func FromDomain(l *listing.Listing) ListingDTO {
	return ListingDTO{
		ID:             l.ID().Bytes(),
		OwnerID:        l.OwnerID().Bytes(),
		OwnerName:      l.OwnerName(),
		Name:           l.Name(),
		UnitPriceCents: l.UnitPriceCents(),
		AvailableQty:   l.AvailableQty(),
	}
}

// toDomain converts a database DTO to a listing.
func toDomain(dto ListingDTO) (*listing.Listing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return listing.RestoreListing(id, ownerID, dto.OwnerName, dto.Name, dto.UnitPriceCents, dto.AvailableQty)
}
