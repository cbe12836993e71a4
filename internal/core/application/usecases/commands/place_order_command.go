package commands

import (
	"errors"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/errs"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderItem is one requested position: which listing and how many
// units. Names and prices are resolved from the catalog, not trusted from
// the request.
type PlaceOrderItem struct {
	ListingID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand represents a customer's request to purchase produce.
// Carries the requested items, the declared total the customer saw, and
// the delivery address.
//
// Example:
//
//	items := []commands.PlaceOrderItem{{ListingID: listingID, Quantity: 2}}
//	cmd, err := commands.NewPlaceOrderCommand(customer, items, 10000, addr)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	purchaser       actor.Actor
	items           []PlaceOrderItem
	totalCents      int64
	deliveryAddress kernel.Address

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the purchaser is constructed, at least one item is
// requested, every quantity is positive, and the address is complete.
func NewPlaceOrderCommand(
	purchaser actor.Actor,
	items []PlaceOrderItem,
	totalCents int64,
	deliveryAddress kernel.Address,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPurchaser(purchaser),
		cmd.setItems(items),
		cmd.setTotalCents(totalCents),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Purchaser returns the customer placing the order.
func (c PlaceOrderCommand) Purchaser() actor.Actor {
	return c.purchaser
}

// Items returns the requested items.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return c.items
}

// TotalCents returns the total the customer saw when confirming, in cents.
func (c PlaceOrderCommand) TotalCents() int64 {
	return c.totalCents
}

// DeliveryAddress returns where the order should ship.
func (c PlaceOrderCommand) DeliveryAddress() kernel.Address {
	return c.deliveryAddress
}

func (c *PlaceOrderCommand) setPurchaser(purchaser actor.Actor) error {
	if err := purchaser.Validate(); err != nil {
		return err
	}
	c.purchaser = purchaser
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.ListingID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
	}

	c.items = items
	return nil
}

func (c *PlaceOrderCommand) setTotalCents(totalCents int64) error {
	if totalCents < 0 {
		return errs.NewValueIsInvalidError("totalAmount")
	}
	c.totalCents = totalCents
	return nil
}

func (c *PlaceOrderCommand) setDeliveryAddress(deliveryAddress kernel.Address) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	c.deliveryAddress = deliveryAddress
	return nil
}
