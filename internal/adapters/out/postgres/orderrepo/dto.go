// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Implements the repository pattern for the order aggregate,
// handling conversion between domain entities and database representations.
//
// Line items and the status ledger are stored as jsonb documents on the order
// row rather than as child tables: both are immutable-once-written lists that
// are always read and written with their parent.
package orderrepo

import (
	"time"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by purchaser, vendor, and status for the role-scoped list queries.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number        string    `gorm:"uniqueIndex"`
	PurchaserID   uuid.UUID `gorm:"type:uuid;index"`
	PurchaserName string
	VendorID      *uuid.UUID `gorm:"type:uuid;index"`
	VendorName    string
	Items         []ItemDTO  `gorm:"serializer:json;type:jsonb"`
	TotalCents    int64
	Address       AddressDTO  `gorm:"embedded;embeddedPrefix:address_"`
	Status        int         `gorm:"index"`
	History       []ChangeDTO `gorm:"serializer:json;type:jsonb"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address columns.
type AddressDTO struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// ItemDTO is the jsonb element for one line item.
type ItemDTO struct {
	ListingID      uuid.UUID `json:"listing_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// ChangeDTO is the jsonb element for one status ledger entry.
// Status is stored as the numeric code; the display form is derived at read
// time so renames never require a data migration.
type ChangeDTO struct {
	Status int       `json:"status"`
	At     time.Time `json:"at"`
	By     string    `json:"by"`
	Note   string    `json:"note,omitempty"`
}

// AddressFromDomain converts a domain address to its column representation.
// Shared with deliveryrepo, which persists the same embedded shape.
func AddressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Street:     a.Street(),
		City:       a.City(),
		Region:     a.Region(),
		PostalCode: a.PostalCode(),
	}
}

// AddressToDomain converts the column representation back to a domain address.
func AddressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.City, dto.Region, dto.PostalCode)
}

// ItemsFromDomain converts line items to their jsonb representation.
func ItemsFromDomain(items []order.LineItem) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			ListingID:      item.ListingID().Bytes(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}
	return dtos
}

// ItemsToDomain converts jsonb line items back to domain line items.
func ItemsToDomain(dtos []ItemDTO) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
		if err != nil {
			return nil, err
		}

		item, err := order.NewLineItem(listingID, dto.Name, dto.Quantity, dto.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ChangesFromDomain converts ledger entries to their jsonb representation.
func ChangesFromDomain(changes []status.Change) []ChangeDTO {
	dtos := make([]ChangeDTO, 0, len(changes))
	for _, c := range changes {
		dtos = append(dtos, ChangeFromDomain(c))
	}
	return dtos
}

// ChangeFromDomain converts a single ledger entry.
func ChangeFromDomain(c status.Change) ChangeDTO {
	return ChangeDTO{
		Status: int(c.Status),
		At:     c.At,
		By:     c.By,
		Note:   c.Note,
	}
}

// ChangesToDomain converts jsonb ledger entries back to domain entries.
func ChangesToDomain(dtos []ChangeDTO) []status.Change {
	changes := make([]status.Change, 0, len(dtos))
	for _, dto := range dtos {
		changes = append(changes, status.Change{
			Status: status.Status(dto.Status),
			At:     dto.At,
			By:     dto.By,
			Note:   dto.Note,
		})
	}
	return changes
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var vendorID *uuid.UUID
	if id := o.VendorID(); id != nil {
		raw := id.Bytes()
		vendorID = &raw
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		Number:        o.Number(),
		PurchaserID:   o.PurchaserID().Bytes(),
		PurchaserName: o.PurchaserName(),
		VendorID:      vendorID,
		VendorName:    o.VendorName(),
		Items:         ItemsFromDomain(o.Items()),
		TotalCents:    o.TotalCents(),
		Address:       AddressFromDomain(o.DeliveryAddress()),
		Status:        int(o.Status()),
		History:       ChangesFromDomain(o.History()),
		CreatedAt:     o.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	purchaserID, err := kernel.UUIDFromBytes(dto.PurchaserID[:])
	if err != nil {
		return nil, err
	}

	var vendorID *kernel.UUID
	if dto.VendorID != nil {
		vID, vendorErr := kernel.UUIDFromBytes((*dto.VendorID)[:])
		if vendorErr != nil {
			return nil, vendorErr
		}
		vendorID = &vID
	}

	items, err := ItemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	address, err := AddressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		purchaserID,
		dto.PurchaserName,
		vendorID,
		dto.VendorName,
		items,
		dto.TotalCents,
		address,
		status.Status(dto.Status),
		ChangesToDomain(dto.History),
		dto.CreatedAt,
	)
}
