package commands

import (
	"context"
	"fmt"

	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/pkg/errs"
)

// PlaceOrderCommandHandler handles the business logic for placing an order.
// This is the single creation entry point: the Order and its paired
// Delivery are always created together, in one transaction, with the
// delivery denormalizing the order's number, customer, address, items, and
// total. Stock is checked and decremented per listing in the same
// transaction; there is no reservation step.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command and returns the created order.
//
// Line item names and prices are resolved from the catalog; the command's
// declared total must equal the resolved item sum or the order is rejected.
// An ordered quantity exceeding the listing's available stock fails with
// errs.ErrInsufficientStock before anything is written.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	listingRepo := uow.ListingRepository()

	items := make([]order.LineItem, 0, len(cmd.Items()))
	var fulfillerID *kernel.UUID
	var fulfillerName string

	for _, requested := range cmd.Items() {
		l, err := listingRepo.Get(ctx, requested.ListingID)
		if err != nil {
			return nil, err
		}

		if !l.HasStock(requested.Quantity) {
			return nil, fmt.Errorf("%w: listing %s has %d available, %d requested",
				errs.ErrInsufficientStock, l.ID(), l.AvailableQty(), requested.Quantity)
		}

		item, err := order.NewLineItem(l.ID(), l.Name(), requested.Quantity, l.UnitPriceCents())
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		// The first listing's owner becomes the order's fulfiller. Orders
		// mixing listings from several vendors are split upstream.
		if fulfillerID == nil {
			ownerID := l.OwnerID()
			fulfillerID = &ownerID
			fulfillerName = l.OwnerName()
		}

		if err = listingRepo.DecrementStock(ctx, l.ID(), requested.Quantity); err != nil {
			return nil, err
		}
	}

	number, err := order.GenerateNumber()
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		cmd.Purchaser().ID(),
		cmd.Purchaser().Name(),
		items,
		cmd.TotalCents(),
		cmd.DeliveryAddress(),
	)
	if err != nil {
		return nil, err
	}

	if fulfillerID != nil {
		if err = o.AssignVendor(*fulfillerID, fulfillerName); err != nil {
			return nil, err
		}
	}

	d, err := delivery.NewFromOrder(kernel.NewUUID(), o)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
