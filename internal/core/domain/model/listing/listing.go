// Package listing provides the minimal catalog view the order flow needs:
// enough of a produce listing to price line items, check available stock at
// order-creation time, and identify the fulfilling grower or vendor.
// Catalog management itself (create/edit/delete listings) lives elsewhere.
package listing

import (
	"errors"
	"fmt"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/errs"
)

// ErrListingIsNotConstructed is returned when a Listing was not created via RestoreListing.
var ErrListingIsNotConstructed = errors.New("Listing must be created via RestoreListing")

// Listing is a produce catalog entry as the order flow sees it.
type Listing struct {
	id             kernel.UUID
	ownerID        kernel.UUID
	ownerName      string
	name           string
	unitPriceCents int64
	availableQty   int

	isConstructed bool
}

// RestoreListing reconstructs a Listing from persistence.
func RestoreListing(
	id kernel.UUID,
	ownerID kernel.UUID,
	ownerName string,
	name string,
	unitPriceCents int64,
	availableQty int,
) (*Listing, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	if unitPriceCents < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPriceCents))
	}

	return &Listing{
		id:             id,
		ownerID:        ownerID,
		ownerName:      ownerName,
		name:           name,
		unitPriceCents: unitPriceCents,
		availableQty:   availableQty,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Listing was created through RestoreListing.
func (l *Listing) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrListingIsNotConstructed
	}
	return nil
}

// ID returns the listing's unique identifier.
func (l *Listing) ID() kernel.UUID {
	return l.id
}

// OwnerID returns the grower or vendor who owns the listing.
func (l *Listing) OwnerID() kernel.UUID {
	return l.ownerID
}

// OwnerName returns the owner's display name.
func (l *Listing) OwnerName() string {
	return l.ownerName
}

// Name returns the listing display name.
func (l *Listing) Name() string {
	return l.name
}

// UnitPriceCents returns the current per-unit price in cents.
func (l *Listing) UnitPriceCents() int64 {
	return l.unitPriceCents
}

// AvailableQty returns the units currently in stock.
func (l *Listing) AvailableQty() int {
	return l.availableQty
}

// HasStock reports whether the requested quantity is available. This is a
// point-in-time check, not a reservation; the repository's conditional
// decrement is what prevents overselling under concurrency.
func (l *Listing) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= l.availableQty
}
