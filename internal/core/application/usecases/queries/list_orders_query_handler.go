package queries

import (
	"context"
	"time"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves role-scoped order summaries.
// Scoping happens in SQL with the same matching rule the access gate applies
// to single records: structural ID match, plus the name fallback for rows
// whose vendor reference is missing.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query and returns summaries newest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const columns = `
		SELECT
			id,
			number,
			status,
			total_cents,
			vendor_name,
			created_at
		FROM orders
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
	default:
		rowsQuery = tx.Raw(columns+`
			WHERE purchaser_id = ?
			ORDER BY created_at DESC
		`, requester.ID().Bytes())
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id uuid.UUID
		var statusCode int
		var createdAt time.Time

		if err = rows.Scan(&id, &resp.Number, &statusCode, &resp.TotalCents,
			&resp.VendorName, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.Status = status.Status(statusCode).String()
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
