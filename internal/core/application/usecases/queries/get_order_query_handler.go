package queries

import (
	"context"
	"errors"

	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/core/domain/services"
	"freshmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with items and history.
type GetOrderQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, gate: services.NewAccessGate()}
}

// Handle executes the query.
//
// Returns errs.ErrNotFoundOrUnauthorized both when the order is missing and
// when the requester has no relationship to it.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).First(&row, "id = ?", query.OrderID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.ErrNotFoundOrUnauthorized
		}
		return GetOrderQueryResponse{}, err
	}

	purchaserRaw := row.PurchaserID
	purchaserRef, err := refFromRaw(&purchaserRaw)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	fulfillerRef, err := refFromRaw(row.VendorID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	rec := recordRefs{
		purchaserRef:  purchaserRef,
		fulfillerRef:  fulfillerRef,
		purchaserName: row.PurchaserName,
		fulfillerName: row.VendorName,
	}
	if !h.gate.CanAccess(query.Requester(), rec) {
		return GetOrderQueryResponse{}, errs.ErrNotFoundOrUnauthorized
	}

	items, err := itemViews(row.Items)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:            query.OrderID(),
		Number:        row.Number,
		PurchaserName: row.PurchaserName,
		VendorName:    row.VendorName,
		Status:        status.Status(row.Status).String(),
		TotalCents:    row.TotalCents,
		Items:         items,
		Address:       addressView(row.Address),
		History:       changeViews(row.History),
		CreatedAt:     row.CreatedAt,
	}, nil
}
