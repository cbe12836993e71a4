package queries

import (
	"context"
	"time"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveriesQueryHandler retrieves role-scoped delivery summaries.
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesQueryHandler creates a handler for delivery listings.
func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns summaries newest first.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]ListDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const columns = `
		SELECT
			id,
			order_number,
			status,
			customer_name,
			vendor_name,
			created_at
		FROM deliveries
	`

	requester := query.Requester()
	tx := h.db.WithContext(ctx)

	var rowsQuery *gorm.DB
	switch {
	case requester.IsAdmin():
		rowsQuery = tx.Raw(columns + " ORDER BY created_at DESC")
	case requester.Role().IsFulfiller() && requester.Name() != "":
		rowsQuery = tx.Raw(columns+`
			WHERE vendor_id = ? OR (vendor_id IS NULL AND vendor_name = ?)
			ORDER BY created_at DESC
		`, requester.ID().Bytes(), requester.Name())
	case requester.Role().IsFulfiller():
		rowsQuery = tx.Raw(columns+`
			WHERE vendor_id = ?
			ORDER BY created_at DESC
		`, requester.ID().Bytes())
	case requester.Name() != "":
		rowsQuery = tx.Raw(columns+`
			WHERE customer_id = ? OR (customer_id IS NULL AND customer_name = ?)
			ORDER BY created_at DESC
		`, requester.ID().Bytes(), requester.Name())
	default:
		rowsQuery = tx.Raw(columns+`
			WHERE customer_id = ?
			ORDER BY created_at DESC
		`, requester.ID().Bytes())
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]ListDeliveriesQueryResponse, 0)
	for rows.Next() {
		var resp ListDeliveriesQueryResponse
		var id uuid.UUID
		var statusCode int
		var createdAt time.Time

		if err = rows.Scan(&id, &resp.OrderNumber, &statusCode, &resp.CustomerName,
			&resp.VendorName, &createdAt); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = deliveryID
		resp.Status = status.Status(statusCode).String()
		resp.CreatedAt = createdAt
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
