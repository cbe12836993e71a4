package queries

import (
	"errors"
	"time"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order's full detail, including line items and
// the status history. Access is gated: a requester with no relationship to
// the order gets the same answer as for an order that does not exist.
type GetOrderQuery struct {
	orderID   kernel.UUID
	requester actor.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order on behalf of the requester.
func NewGetOrderQuery(orderID kernel.UUID, requester actor.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), requester.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:   orderID,
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's unique identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Requester returns the actor requesting the order.
func (q GetOrderQuery) Requester() actor.Actor {
	return q.requester
}

// GetOrderQueryResponse is the full order detail.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Number        string
	PurchaserName string
	VendorName    string
	Status        string
	TotalCents    int64
	Items         []LineItemView
	Address       AddressView
	History       []StatusChangeView
	CreatedAt     time.Time
}
