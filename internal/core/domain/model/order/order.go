package order

import (
	"errors"
	"fmt"
	"time"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a purchase transaction: what was bought, by whom, where
// it ships, and where it stands in the fulfillment lifecycle. It is an
// aggregate root; every accepted status change is recorded in an append-only
// history ledger.
//
// Order maintains these invariants:
//   - At least one line item; every item validated at construction
//   - Total amount equals the sum of line items at creation time
//   - Status transitions follow the graph in the status package
//   - History is append-only: entries are never edited or removed
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number, unique across orders
	number string

	// purchaserID references the customer who placed the order
	purchaserID kernel.UUID

	// purchaserName is the customer display name captured at creation
	purchaserName string

	// vendorID references the fulfilling vendor or grower (nil if unassigned)
	vendorID *kernel.UUID

	// vendorName is a denormalized fulfiller name used as an authorization
	// fallback when the structured reference is absent
	vendorName string

	// items is the ordered list of purchased positions
	items []LineItem

	// totalCents is the order total, equal to the item sum at creation
	totalCents int64

	// deliveryAddress is where the order ships
	deliveryAddress kernel.Address

	// currentStatus is the current lifecycle state
	currentStatus status.Status

	// history is the append-only status ledger
	history []status.Change

	// createdAt is the immutable creation timestamp
	createdAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an Order in Pending status with a seeded history ledger.
//
// Validation performed:
//   - id and purchaserID must be valid UUIDs
//   - number must be non-empty
//   - items must be non-empty and individually constructed
//   - totalCents must equal the sum of line item subtotals
//   - deliveryAddress must be constructed
//
// The purchaser display name may be empty; it is denormalized onto the
// paired delivery with an "Unknown" fallback there.
func NewOrder(
	id kernel.UUID,
	number string,
	purchaserID kernel.UUID,
	purchaserName string,
	items []LineItem,
	totalCents int64,
	deliveryAddress kernel.Address,
) (*Order, error) {
	o := &Order{
		currentStatus: status.Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPurchaser(purchaserID, purchaserName),
		o.setItems(items),
		o.setTotalCents(totalCents),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	o.history = status.AppendChange(nil, status.NewChange(status.Pending, purchaserName, ""))
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time invariants (the total/item equality is checked once, at
// creation, never on read). A nil history is tolerated and healed on the
// next append; malformed records with missing ledgers exist in production.
func RestoreOrder(
	id kernel.UUID,
	number string,
	purchaserID kernel.UUID,
	purchaserName string,
	vendorID *kernel.UUID,
	vendorName string,
	items []LineItem,
	totalCents int64,
	deliveryAddress kernel.Address,
	currentStatus status.Status,
	history []status.Change,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		purchaserID.Validate(),
		currentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return &Order{
		id:              id,
		number:          number,
		purchaserID:     purchaserID,
		purchaserName:   purchaserName,
		vendorID:        vendorID,
		vendorName:      vendorName,
		items:           items,
		totalCents:      totalCents,
		deliveryAddress: deliveryAddress,
		currentStatus:   currentStatus,
		history:         history,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// PurchaserID returns the customer who placed the order.
func (o *Order) PurchaserID() kernel.UUID {
	return o.purchaserID
}

// PurchaserName returns the customer display name captured at creation.
func (o *Order) PurchaserName() string {
	return o.purchaserName
}

// VendorID returns the fulfilling vendor's ID, or nil if unassigned.
func (o *Order) VendorID() *kernel.UUID {
	return o.vendorID
}

// VendorName returns the denormalized fulfiller name, possibly empty.
func (o *Order) VendorName() string {
	return o.vendorName
}

// Items returns the purchased line items.
func (o *Order) Items() []LineItem {
	return o.items
}

// TotalCents returns the order total in cents.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// DeliveryAddress returns where the order ships.
func (o *Order) DeliveryAddress() kernel.Address {
	return o.deliveryAddress
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() status.Status {
	return o.currentStatus
}

// History returns the append-only status ledger, oldest entry first.
func (o *Order) History() []status.Change {
	return o.history
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignVendor sets the fulfilling vendor. Called at creation time when the
// fulfiller is known from the purchased listings.
func (o *Order) AssignVendor(vendorID kernel.UUID, vendorName string) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	o.vendorID = &vendorID
	o.vendorName = vendorName
	return nil
}

// AdvanceStatus moves the order to the requested status and appends a
// ledger entry recording who drove the transition and why.
//
// Returns:
//   - status.ErrAlreadyInStatus if the order is already in the requested
//     status (soft; callers may treat it as idempotent success)
//   - a status.IllegalTransitionError if the transition graph has no edge
//     from the current status to the requested one
func (o *Order) AdvanceStatus(requested status.Status, by, note string) error {
	next, err := o.currentStatus.TransitionTo(requested)
	if err != nil {
		return err
	}

	o.currentStatus = next
	o.history = status.AppendChange(o.history, status.NewChange(next, by, note))
	return nil
}

// LastChange returns the most recent ledger entry, or a zero Change when
// the ledger is empty.
func (o *Order) LastChange() status.Change {
	if len(o.history) == 0 {
		return status.Change{}
	}
	return o.history[len(o.history)-1]
}

// PurchaserRef implements the access gate record contract.
func (o *Order) PurchaserRef() *kernel.UUID {
	id := o.purchaserID
	return &id
}

// FulfillerRef implements the access gate record contract.
func (o *Order) FulfillerRef() *kernel.UUID {
	return o.vendorID
}

// FulfillerName implements the access gate record contract.
func (o *Order) FulfillerName() string {
	return o.vendorName
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setPurchaser(purchaserID kernel.UUID, purchaserName string) error {
	if err := purchaserID.Validate(); err != nil {
		return err
	}
	o.purchaserID = purchaserID
	o.purchaserName = purchaserName
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = items
	return nil
}

func (o *Order) setTotalCents(totalCents int64) error {
	if totalCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%d is negative", totalCents))
	}

	if sum := SumCents(o.items); totalCents != sum {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("declared total %d does not match item sum %d", totalCents, sum))
	}

	o.totalCents = totalCents
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress kernel.Address) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = deliveryAddress
	return nil
}
