package queries

import (
	"context"
	"errors"

	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/core/domain/services"
	"freshmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves one delivery with items and ledger.
type GetDeliveryQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery queries.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db, gate: services.NewAccessGate()}
}

// Handle executes the query.
//
// Returns errs.ErrNotFoundOrUnauthorized both when the delivery is missing
// and when the requester has no relationship to it.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	var row deliveryRow
	err := h.db.WithContext(ctx).First(&row, "id = ?", query.DeliveryID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetDeliveryQueryResponse{}, errs.ErrNotFoundOrUnauthorized
		}
		return GetDeliveryQueryResponse{}, err
	}

	customerRef, err := refFromRaw(row.CustomerID)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	fulfillerRef, err := refFromRaw(row.VendorID)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	rec := recordRefs{
		purchaserRef:  customerRef,
		fulfillerRef:  fulfillerRef,
		purchaserName: row.CustomerName,
		fulfillerName: row.VendorName,
	}
	if !h.gate.CanAccess(query.Requester(), rec) {
		return GetDeliveryQueryResponse{}, errs.ErrNotFoundOrUnauthorized
	}

	orderRef, err := refFromRaw(row.OrderID)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	items, err := itemViews(row.Items)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	ledger := changeViews(row.Ledger)

	return GetDeliveryQueryResponse{
		ID:            query.DeliveryID(),
		OrderID:       orderRef,
		OrderNumber:   row.OrderNumber,
		CustomerName:  row.CustomerName,
		VendorName:    row.VendorName,
		Status:        status.Status(row.Status).String(),
		TotalCents:    row.TotalCents,
		Items:         items,
		Address:       addressView(row.Address),
		Timeline:      ledger,
		StatusHistory: ledger,
		CreatedAt:     row.CreatedAt,
	}, nil
}
