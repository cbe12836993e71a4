// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. Deliveries denormalize their order's data at
// creation time, so the row carries its own copies of the number, customer,
// vendor, items, total, and address alongside an independent status ledger.
//
// The jsonb shapes for items and ledger entries are shared with orderrepo so
// the two tables stay queryable with one set of readers.
package deliveryrepo

import (
	"time"

	"freshmarket/internal/adapters/out/postgres/orderrepo"
	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. OrderID, CustomerID, and VendorID are nullable: records created
// before structured references were captured carry only the denormalized
// number and names.
type DeliveryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber  string     `gorm:"index"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string
	VendorID     *uuid.UUID `gorm:"type:uuid;index"`
	VendorName   string
	Items        []orderrepo.ItemDTO `gorm:"serializer:json;type:jsonb"`
	TotalCents   int64
	Address      orderrepo.AddressDTO  `gorm:"embedded;embeddedPrefix:address_"`
	Status       int                   `gorm:"index"`
	Ledger       []orderrepo.ChangeDTO `gorm:"serializer:json;type:jsonb"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:           d.ID().Bytes(),
		OrderID:      refToRaw(d.OrderID()),
		OrderNumber:  d.OrderNumber(),
		CustomerID:   refToRaw(d.CustomerID()),
		CustomerName: d.CustomerName(),
		VendorID:     refToRaw(d.VendorID()),
		VendorName:   d.VendorName(),
		Items:        orderrepo.ItemsFromDomain(d.Items()),
		TotalCents:   d.TotalCents(),
		Address:      orderrepo.AddressFromDomain(d.Address()),
		Status:       int(d.Status()),
		Ledger:       orderrepo.ChangesFromDomain(d.Timeline()),
		CreatedAt:    d.CreatedAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := rawToRef(dto.OrderID)
	if err != nil {
		return nil, err
	}

	customerID, err := rawToRef(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	vendorID, err := rawToRef(dto.VendorID)
	if err != nil {
		return nil, err
	}

	items, err := orderrepo.ItemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	address, err := orderrepo.AddressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		dto.OrderNumber,
		customerID,
		dto.CustomerName,
		vendorID,
		dto.VendorName,
		items,
		dto.TotalCents,
		address,
		status.Status(dto.Status),
		orderrepo.ChangesToDomain(dto.Ledger),
		dto.CreatedAt,
	)
}

func refToRaw(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func rawToRef(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
