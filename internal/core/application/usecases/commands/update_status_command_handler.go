package commands

import (
	"context"
	"errors"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/core/domain/services"
	"freshmarket/internal/pkg/errs"
)

// updateAttempts bounds guarded-update retries: the initial attempt plus
// one automatic re-read/re-validate after a lost race.
const updateAttempts = 2

// UpdateStatusResult reports the outcome of a status update.
//
// AlreadyInStatus marks the soft no-op case; callers should treat it as
// idempotent success. PropagationIncomplete means the targeted record was
// updated but the counterpart was not converged: the local write stands,
// and the reconciliation job repairs the pair out of band.
type UpdateStatusResult struct {
	// Order is the updated order when the update targeted an order.
	Order *order.Order

	// Delivery is the updated delivery when the update targeted a delivery.
	Delivery *delivery.Delivery

	AlreadyInStatus       bool
	PropagationIncomplete bool
}

// UpdateStatusCommandHandler drives a status transition against one record
// of an order/delivery pair: authorization gate, transition validation,
// guarded conditional write, then best-effort propagation to the
// counterpart in a separate transaction.
//
// The guarded write is what makes concurrent updates safe: two callers
// both reading Pending cannot both land their transition, because the
// write is conditional on the stored status still being the one each
// caller validated against. The loser is re-read and re-validated once;
// a second loss surfaces as an illegal transition.
type UpdateStatusCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
}

// NewUpdateStatusCommandHandler creates a handler for status updates.
func NewUpdateStatusCommandHandler(uowFactory UoWFactory) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
	}
}

// Handle processes the status update command.
//
// Returns errs.ErrNotFoundOrUnauthorized both when the record does not
// exist and when the requester has no relationship to it, so callers
// cannot probe for record existence.
func (h *UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (UpdateStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateStatusResult{}, err
	}

	switch cmd.Kind() {
	case RecordDelivery:
		return h.handleDelivery(ctx, cmd)
	default:
		return h.handleOrder(ctx, cmd)
	}
}

func (h *UpdateStatusCommandHandler) handleOrder(ctx context.Context, cmd UpdateStatusCommand) (UpdateStatusResult, error) {
	var conflict error

	for attempt := 0; attempt < updateAttempts; attempt++ {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return UpdateStatusResult{}, err
		}

		o, err := uow.OrderRepository().Get(ctx, cmd.RecordID())
		if err != nil {
			_ = uow.Rollback(ctx)
			return UpdateStatusResult{}, maskNotFound(err)
		}

		match := h.gate.Evaluate(cmd.Requester(), o)
		if err = services.ValidateStatusChange(o.Status(), cmd.Requested(), match); err != nil {
			_ = uow.Rollback(ctx)
			if errors.Is(err, status.ErrAlreadyInStatus) {
				return UpdateStatusResult{Order: o, AlreadyInStatus: true}, nil
			}
			return UpdateStatusResult{}, err
		}

		expected := o.Status()
		if err = o.AdvanceStatus(cmd.Requested(), changedBy(cmd.Requester()), cmd.Note()); err != nil {
			_ = uow.Rollback(ctx)
			return UpdateStatusResult{}, err
		}

		if err = uow.OrderRepository().UpdateStatusGuarded(ctx, o.ID(), expected, o.LastChange()); err != nil {
			_ = uow.Rollback(ctx)
			if errors.Is(err, errs.ErrStatusConflict) {
				// Lost a race: another caller advanced the record first.
				// Loop back to re-read and re-validate against the new status.
				conflict = status.NewIllegalTransitionError(expected, cmd.Requested())
				continue
			}
			return UpdateStatusResult{}, err
		}

		if err = uow.Commit(ctx); err != nil {
			return UpdateStatusResult{}, err
		}

		return UpdateStatusResult{
			Order:                 o,
			PropagationIncomplete: !h.propagateToDelivery(ctx, o, cmd),
		}, nil
	}

	return UpdateStatusResult{}, conflict
}

func (h *UpdateStatusCommandHandler) handleDelivery(ctx context.Context, cmd UpdateStatusCommand) (UpdateStatusResult, error) {
	var conflict error

	for attempt := 0; attempt < updateAttempts; attempt++ {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return UpdateStatusResult{}, err
		}

		d, err := uow.DeliveryRepository().Get(ctx, cmd.RecordID())
		if err != nil {
			_ = uow.Rollback(ctx)
			return UpdateStatusResult{}, maskNotFound(err)
		}

		match := h.gate.Evaluate(cmd.Requester(), d)
		if err = services.ValidateStatusChange(d.Status(), cmd.Requested(), match); err != nil {
			_ = uow.Rollback(ctx)
			if errors.Is(err, status.ErrAlreadyInStatus) {
				return UpdateStatusResult{Delivery: d, AlreadyInStatus: true}, nil
			}
			return UpdateStatusResult{}, err
		}

		expected := d.Status()
		if err = d.AdvanceStatus(cmd.Requested(), changedBy(cmd.Requester()), cmd.Note()); err != nil {
			_ = uow.Rollback(ctx)
			return UpdateStatusResult{}, err
		}

		if err = uow.DeliveryRepository().UpdateStatusGuarded(ctx, d.ID(), expected, d.LastChange()); err != nil {
			_ = uow.Rollback(ctx)
			if errors.Is(err, errs.ErrStatusConflict) {
				conflict = status.NewIllegalTransitionError(expected, cmd.Requested())
				continue
			}
			return UpdateStatusResult{}, err
		}

		if err = uow.Commit(ctx); err != nil {
			return UpdateStatusResult{}, err
		}

		return UpdateStatusResult{
			Delivery:              d,
			PropagationIncomplete: !h.propagateToOrder(ctx, d, cmd),
		}, nil
	}

	return UpdateStatusResult{}, conflict
}

// propagateToDelivery converges the paired delivery onto the order's new
// status. Best-effort: any failure leaves the order's update standing and
// reports false so the caller can surface PropagationIncomplete.
func (h *UpdateStatusCommandHandler) propagateToDelivery(ctx context.Context, o *order.Order, cmd UpdateStatusCommand) bool {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderID := o.ID()
	d, err := uow.DeliveryRepository().GetByOrderRef(ctx, &orderID, o.Number())
	if err != nil {
		return false
	}

	if d.Status() == o.Status() {
		return true
	}

	entry := status.NewChange(o.Status(), changedBy(cmd.Requester()), cmd.Note())
	if err = uow.DeliveryRepository().UpdateStatusGuarded(ctx, d.ID(), d.Status(), entry); err != nil {
		return false
	}

	return uow.Commit(ctx) == nil
}

// propagateToOrder converges the paired order onto the delivery's new
// status. Same best-effort contract as propagateToDelivery.
func (h *UpdateStatusCommandHandler) propagateToOrder(ctx context.Context, d *delivery.Delivery, cmd UpdateStatusCommand) bool {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var o *order.Order
	var err error
	if d.OrderID() != nil {
		o, err = uow.OrderRepository().Get(ctx, *d.OrderID())
	} else {
		o, err = uow.OrderRepository().GetByNumber(ctx, d.OrderNumber())
	}
	if err != nil {
		return false
	}

	if o.Status() == d.Status() {
		return true
	}

	entry := status.NewChange(d.Status(), changedBy(cmd.Requester()), cmd.Note())
	if err = uow.OrderRepository().UpdateStatusGuarded(ctx, o.ID(), o.Status(), entry); err != nil {
		return false
	}

	return uow.Commit(ctx) == nil
}

// changedBy renders the ledger's "by" field: the requester's display name,
// falling back to their role token when no name is known.
func changedBy(a actor.Actor) string {
	if a.Name() != "" {
		return a.Name()
	}
	return a.Role().String()
}

// maskNotFound converts repository not-found errors into the merged
// not-found-or-unauthorized error so record existence never leaks.
func maskNotFound(err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.ErrNotFoundOrUnauthorized
	}
	return err
}
