package queries

import (
	"errors"
	"time"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
)

// ListDeliveriesQuery retrieves the deliveries visible to the requesting
// actor, scoped the same way as ListOrdersQuery. Unlike orders, delivery
// rows may lack a structured customer reference, so the name fallback
// applies to both sides.
type ListDeliveriesQuery struct {
	requester actor.Actor

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery creates a query scoped to the given requester.
func NewListDeliveriesQuery(requester actor.Actor) (ListDeliveriesQuery, error) {
	if err := requester.Validate(); err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// Requester returns the actor the listing is scoped to.
func (q ListDeliveriesQuery) Requester() actor.Actor {
	return q.requester
}

// ListDeliveriesQueryResponse is one delivery summary row.
type ListDeliveriesQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	Status       string
	CustomerName string
	VendorName   string
	CreatedAt    time.Time
}
