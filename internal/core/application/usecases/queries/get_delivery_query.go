package queries

import (
	"errors"
	"time"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
)

// GetDeliveryQuery retrieves one delivery's full detail. Gated the same way
// as GetOrderQuery.
type GetDeliveryQuery struct {
	deliveryID kernel.UUID
	requester  actor.Actor

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for one delivery on behalf of the requester.
func NewGetDeliveryQuery(deliveryID kernel.UUID, requester actor.Actor) (GetDeliveryQuery, error) {
	if err := errors.Join(deliveryID.Validate(), requester.Validate()); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		requester:  requester,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the requested delivery's unique identifier.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Requester returns the actor requesting the delivery.
func (q GetDeliveryQuery) Requester() actor.Actor {
	return q.requester
}

// GetDeliveryQueryResponse is the full delivery detail. Timeline and
// StatusHistory carry the same entries: older consumers expect both field
// names, and both are projections of the one stored ledger.
type GetDeliveryQueryResponse struct {
	ID            kernel.UUID
	OrderID       *kernel.UUID
	OrderNumber   string
	CustomerName  string
	VendorName    string
	Status        string
	TotalCents    int64
	Items         []LineItemView
	Address       AddressView
	Timeline      []StatusChangeView
	StatusHistory []StatusChangeView
	CreatedAt     time.Time
}
