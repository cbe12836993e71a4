package queries

import (
	"errors"
	"time"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery retrieves the orders visible to the requesting actor.
// Customers see orders they placed, vendors and growers see orders they
// fulfill, administrators see everything.
type ListOrdersQuery struct {
	requester actor.Actor

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query scoped to the given requester.
func NewListOrdersQuery(requester actor.Actor) (ListOrdersQuery, error) {
	if err := requester.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Requester returns the actor the listing is scoped to.
func (q ListOrdersQuery) Requester() actor.Actor {
	return q.requester
}

// ListOrdersQueryResponse is one order summary row.
type ListOrdersQueryResponse struct {
	ID         kernel.UUID
	Number     string
	Status     string
	TotalCents int64
	VendorName string
	CreatedAt  time.Time
}
