// Package queries contains read operations for the CQRS read side. Handlers
// run against the database directly: list queries scope rows to the
// requester's role in SQL, single-record queries load the row and apply the
// same access gate the write path uses. Row shapes are declared here rather
// than borrowed from the persistence adapters, keeping the read side free of
// adapter imports.
package queries

import (
	"time"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/core/domain/services"

	"github.com/google/uuid"
)

// LineItemView is one purchased position as returned to clients.
type LineItemView struct {
	ListingID      kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
	SubtotalCents  int64
}

// StatusChangeView is one ledger entry as returned to clients, with the
// status rendered in its canonical display form.
type StatusChangeView struct {
	Status string
	At     time.Time
	By     string
	Note   string
}

// AddressView is the delivery address as returned to clients.
type AddressView struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// itemRow is the jsonb element for one stored line item.
type itemRow struct {
	ListingID      uuid.UUID `json:"listing_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// changeRow is the jsonb element for one stored ledger entry. Status is the
// numeric code; the display form is derived at read time.
type changeRow struct {
	Status int       `json:"status"`
	At     time.Time `json:"at"`
	By     string    `json:"by"`
	Note   string    `json:"note,omitempty"`
}

// addressRow mirrors the embedded address columns.
type addressRow struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// orderRow is the read-side shape of one orders row.
type orderRow struct {
	ID            uuid.UUID
	Number        string
	PurchaserID   uuid.UUID
	PurchaserName string
	VendorID      *uuid.UUID
	VendorName    string
	Items         []itemRow `gorm:"serializer:json"`
	TotalCents    int64
	Address       addressRow `gorm:"embedded;embeddedPrefix:address_"`
	Status        int
	History       []changeRow `gorm:"serializer:json"`
	CreatedAt     time.Time
}

func (orderRow) TableName() string {
	return "orders"
}

// deliveryRow is the read-side shape of one deliveries row.
type deliveryRow struct {
	ID           uuid.UUID
	OrderID      *uuid.UUID
	OrderNumber  string
	CustomerID   *uuid.UUID
	CustomerName string
	VendorID     *uuid.UUID
	VendorName   string
	Items        []itemRow `gorm:"serializer:json"`
	TotalCents   int64
	Address      addressRow `gorm:"embedded;embeddedPrefix:address_"`
	Status       int
	Ledger       []changeRow `gorm:"serializer:json"`
	CreatedAt    time.Time
}

func (deliveryRow) TableName() string {
	return "deliveries"
}

func itemViews(rows []itemRow) ([]LineItemView, error) {
	views := make([]LineItemView, 0, len(rows))
	for _, row := range rows {
		listingID, err := kernel.UUIDFromBytes(row.ListingID[:])
		if err != nil {
			return nil, err
		}

		views = append(views, LineItemView{
			ListingID:      listingID,
			Name:           row.Name,
			Quantity:       row.Quantity,
			UnitPriceCents: row.UnitPriceCents,
			SubtotalCents:  int64(row.Quantity) * row.UnitPriceCents,
		})
	}
	return views, nil
}

func changeViews(rows []changeRow) []StatusChangeView {
	views := make([]StatusChangeView, 0, len(rows))
	for _, row := range rows {
		views = append(views, StatusChangeView{
			Status: status.Status(row.Status).String(),
			At:     row.At,
			By:     row.By,
			Note:   row.Note,
		})
	}
	return views
}

func addressView(row addressRow) AddressView {
	return AddressView{
		Street:     row.Street,
		City:       row.City,
		Region:     row.Region,
		PostalCode: row.PostalCode,
	}
}

// recordRefs adapts raw row references to the access gate's record contract.
type recordRefs struct {
	purchaserRef  *kernel.UUID
	fulfillerRef  *kernel.UUID
	purchaserName string
	fulfillerName string
}

func (r recordRefs) PurchaserRef() *kernel.UUID { return r.purchaserRef }
func (r recordRefs) FulfillerRef() *kernel.UUID { return r.fulfillerRef }
func (r recordRefs) PurchaserName() string      { return r.purchaserName }
func (r recordRefs) FulfillerName() string      { return r.fulfillerName }

var _ services.Record = recordRefs{}

func refFromRaw(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
