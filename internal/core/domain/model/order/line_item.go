package order

import (
	"errors"
	"fmt"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/errs"
	"freshmarket/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is one purchased position on an order: a catalog listing
// reference, the quantity bought, and the unit price captured at purchase
// time. Prices are carried in cents to avoid floating point drift.
type LineItem struct {
	listingID      kernel.UUID
	name           string
	quantity       int
	unitPriceCents int64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item.
// Quantity must be positive and the unit price non-negative.
func NewLineItem(listingID kernel.UUID, name string, quantity int, unitPriceCents int64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setListingID(listingID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPriceCents(unitPriceCents),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the LineItem was created through NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ListingID returns the catalog listing this item was bought from.
func (li LineItem) ListingID() kernel.UUID {
	return li.listingID
}

// Name returns the listing display name captured at purchase time.
func (li LineItem) Name() string {
	return li.name
}

// Quantity returns the number of units bought.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPriceCents returns the per-unit price in cents captured at purchase time.
func (li LineItem) UnitPriceCents() int64 {
	return li.unitPriceCents
}

// SubtotalCents returns quantity times unit price.
func (li LineItem) SubtotalCents() int64 {
	return int64(li.quantity) * li.unitPriceCents
}

func (li *LineItem) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	li.listingID = listingID
	return nil
}

func (li *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	li.name = name
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPriceCents(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPriceCents))
	}
	li.unitPriceCents = unitPriceCents
	return nil
}

// SumCents totals the subtotals of a list of line items.
func SumCents(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}
	return total
}
