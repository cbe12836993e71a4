package commands

import (
	"context"

	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
)

// reconciledBy is the ledger author recorded on repair entries.
const reconciledBy = "reconciliation"

// ReconcileStatusesResult summarizes one reconciliation run.
type ReconcileStatusesResult struct {
	// Examined is the number of drifted pairs found.
	Examined int

	// Repaired is the number of pairs converged in this run.
	Repaired int
}

// ReconcileStatusesCommandHandler repairs order/delivery pairs whose
// statuses diverged because propagation did not complete. For each drifted
// pair, the record with the longer ledger wins: it saw the more recent
// activity, so the counterpart is converged onto its status. Ties go to
// the order, the commercial record of truth.
//
// Each pair is repaired in its own transaction with the same guarded write
// the live update path uses, so a concurrent user update simply makes the
// repair a no-op for that pair until the next run.
type ReconcileStatusesCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileStatusesCommandHandler creates a handler for status reconciliation.
func NewReconcileStatusesCommandHandler(uowFactory UoWFactory) ReconcileStatusesCommandHandler {
	return ReconcileStatusesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle finds drifted pairs and converges each one.
// Failures on individual pairs are skipped, not fatal: the run reports how
// many pairs it repaired and leaves the rest for the next run.
func (h *ReconcileStatusesCommandHandler) Handle(ctx context.Context, cmd ReconcileStatusesCommand) (ReconcileStatusesResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileStatusesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconcileStatusesResult{}, err
	}

	drifted, err := uow.DeliveryRepository().GetOutOfSync(ctx, cmd.Limit())
	_ = uow.Rollback(ctx)
	if err != nil {
		return ReconcileStatusesResult{}, err
	}

	result := ReconcileStatusesResult{Examined: len(drifted)}
	for _, d := range drifted {
		if h.repairPair(ctx, d) {
			result.Repaired++
		}
	}

	return result, nil
}

// repairPair converges one order/delivery pair. Returns false when the
// pair could not be repaired this run.
func (h *ReconcileStatusesCommandHandler) repairPair(ctx context.Context, stale *delivery.Delivery) bool {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Re-read both sides inside the transaction; the snapshot from
	// GetOutOfSync may be stale by now.
	d, err := uow.DeliveryRepository().Get(ctx, stale.ID())
	if err != nil {
		return false
	}

	var o *order.Order
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

	if len(d.Timeline()) > len(o.History()) {
		entry := status.NewChange(d.Status(), reconciledBy, "")
		if err = uow.OrderRepository().UpdateStatusGuarded(ctx, o.ID(), o.Status(), entry); err != nil {
			return false
		}
	} else {
		entry := status.NewChange(o.Status(), reconciledBy, "")
		if err = uow.DeliveryRepository().UpdateStatusGuarded(ctx, d.ID(), d.Status(), entry); err != nil {
			return false
		}
	}

	return uow.Commit(ctx) == nil
}
