package delivery

import (
	"errors"
	"time"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
	// through the NewFromOrder or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewFromOrder or RestoreDelivery")
)

// UnknownCustomerName is the denormalized fallback used when the purchaser's
// display name cannot be resolved. Resolution failure never blocks creation.
const UnknownCustomerName = "Unknown"

// Delivery is the fulfillment-side mirror of an Order. It carries
// denormalized copies of the order number, customer name, address, line
// items, and total taken at creation time, plus its own status field that
// the application layer keeps converged with the order's.
//
// The status ledger is stored once; Timeline and StatusHistory are two
// views of the same canonical list, kept for consumers that expect both
// field names.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// orderID references the originating order. Nil on legacy records
	// created through a since-removed direct path; those still load and
	// can be advanced, but cannot be propagated to by order ID.
	orderID *kernel.UUID

	// orderNumber is the denormalized order number, used to locate the
	// counterpart when orderID is absent
	orderNumber string

	// customerID references the purchasing customer (nil on legacy records)
	customerID *kernel.UUID

	// customerName is the denormalized customer display name
	customerName string

	// vendorID references the fulfilling vendor or grower (nil on legacy records)
	vendorID *kernel.UUID

	// vendorName is the denormalized fulfiller name
	vendorName string

	// items is the denormalized copy of the order's line items
	items []order.LineItem

	// totalCents is the denormalized order total
	totalCents int64

	// address is the denormalized delivery address
	address kernel.Address

	// currentStatus is the current lifecycle state, independent of the
	// order's own status field
	currentStatus status.Status

	// ledger is the canonical append-only status history
	ledger []status.Change

	// createdAt is the immutable creation timestamp
	createdAt time.Time

	// isConstructed ensures the delivery was created via a factory method
	isConstructed bool
}

// NewFromOrder creates the paired Delivery for a freshly placed order,
// copying the order number, customer name, address, line items, total, and
// vendor assignment. A missing customer name falls back to
// UnknownCustomerName; the fallback never raises an error.
func NewFromOrder(id kernel.UUID, o *order.Order) (*Delivery, error) {
	if err := errors.Join(id.Validate(), o.Validate()); err != nil {
		return nil, err
	}

	customerName := o.PurchaserName()
	if customerName == "" {
		customerName = UnknownCustomerName
	}

	orderID := o.ID()
	customerID := o.PurchaserID()

	d := &Delivery{
		id:            id,
		orderID:       &orderID,
		orderNumber:   o.Number(),
		customerID:    &customerID,
		customerName:  customerName,
		vendorID:      o.VendorID(),
		vendorName:    o.VendorName(),
		items:         o.Items(),
		totalCents:    o.TotalCents(),
		address:       o.DeliveryAddress(),
		currentStatus: o.Status(),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	d.ledger = status.AppendChange(nil, status.NewChange(o.Status(), customerName, ""))
	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence. orderID,
// customerID, and vendorID may all be nil (legacy records); a nil ledger is
// tolerated and healed on the next append.
func RestoreDelivery(
	id kernel.UUID,
	orderID *kernel.UUID,
	orderNumber string,
	customerID *kernel.UUID,
	customerName string,
	vendorID *kernel.UUID,
	vendorName string,
	items []order.LineItem,
	totalCents int64,
	address kernel.Address,
	currentStatus status.Status,
	ledger []status.Change,
	createdAt time.Time,
) (*Delivery, error) {
	if err := errors.Join(id.Validate(), currentStatus.Validate()); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		orderNumber:   orderNumber,
		customerID:    customerID,
		customerName:  customerName,
		vendorID:      vendorID,
		vendorName:    vendorName,
		items:         items,
		totalCents:    totalCents,
		address:       address,
		currentStatus: currentStatus,
		ledger:        ledger,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery instance was properly constructed through a factory method.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the originating order's ID, or nil on legacy records.
func (d *Delivery) OrderID() *kernel.UUID {
	return d.orderID
}

// OrderNumber returns the denormalized order number.
func (d *Delivery) OrderNumber() string {
	return d.orderNumber
}

// CustomerID returns the purchasing customer's ID, or nil on legacy records.
func (d *Delivery) CustomerID() *kernel.UUID {
	return d.customerID
}

// CustomerName returns the denormalized customer display name.
func (d *Delivery) CustomerName() string {
	return d.customerName
}

// VendorID returns the fulfilling vendor's ID, or nil on legacy records.
func (d *Delivery) VendorID() *kernel.UUID {
	return d.vendorID
}

// VendorName returns the denormalized fulfiller name.
func (d *Delivery) VendorName() string {
	return d.vendorName
}

// Items returns the denormalized line items copied at creation.
func (d *Delivery) Items() []order.LineItem {
	return d.items
}

// TotalCents returns the denormalized order total in cents.
func (d *Delivery) TotalCents() int64 {
	return d.totalCents
}

// Address returns the denormalized delivery address.
func (d *Delivery) Address() kernel.Address {
	return d.address
}

// Status returns the current lifecycle state of the delivery.
func (d *Delivery) Status() status.Status {
	return d.currentStatus
}

// Timeline returns the canonical append-only status ledger, oldest first.
func (d *Delivery) Timeline() []status.Change {
	return d.ledger
}

// StatusHistory returns the same canonical ledger as Timeline. Consumers of
// the old API expected two parallel history arrays; both names are kept as
// read-time views of the single stored list.
func (d *Delivery) StatusHistory() []status.Change {
	return d.ledger
}

// CreatedAt returns the immutable creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// AdvanceStatus moves the delivery to the requested status and appends a
// ledger entry. Same contract as order.Order.AdvanceStatus.
func (d *Delivery) AdvanceStatus(requested status.Status, by, note string) error {
	next, err := d.currentStatus.TransitionTo(requested)
	if err != nil {
		return err
	}

	d.currentStatus = next
	d.ledger = status.AppendChange(d.ledger, status.NewChange(next, by, note))
	return nil
}

// LastChange returns the most recent ledger entry, or a zero Change when
// the ledger is empty.
func (d *Delivery) LastChange() status.Change {
	if len(d.ledger) == 0 {
		return status.Change{}
	}
	return d.ledger[len(d.ledger)-1]
}

// PurchaserRef implements the access gate record contract.
func (d *Delivery) PurchaserRef() *kernel.UUID {
	return d.customerID
}

// FulfillerRef implements the access gate record contract.
func (d *Delivery) FulfillerRef() *kernel.UUID {
	return d.vendorID
}

// PurchaserName implements the access gate record contract.
func (d *Delivery) PurchaserName() string {
	return d.customerName
}

// FulfillerName implements the access gate record contract.
func (d *Delivery) FulfillerName() string {
	return d.vendorName
}
