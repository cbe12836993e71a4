package http

import (
	"time"

	"freshmarket/internal/core/application/usecases/queries"
	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressPayload is the delivery address on the wire.
type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

// OrderItemRequest is one requested position in a new order.
type OrderItemRequest struct {
	ListingID string `json:"listing_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the body for POST /api/v1/orders.
type PlaceOrderRequest struct {
	Items      []OrderItemRequest `json:"items"`
	TotalCents int64              `json:"total_cents"`
	Address    AddressPayload     `json:"address"`
}

// UpdateStatusRequest is the body for PATCH status endpoints. Status accepts
// any case and separator variant of a status name.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// LineItemPayload is one purchased position on the wire.
type LineItemPayload struct {
	ListingID      string `json:"listing_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// StatusChangePayload is one ledger entry on the wire.
type StatusChangePayload struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	By     string    `json:"by"`
	Note   string    `json:"note,omitempty"`
}

// OrderPayload is the full order representation.
type OrderPayload struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	PurchaserName string                `json:"purchaser_name"`
	VendorName    string                `json:"vendor_name,omitempty"`
	Status        string                `json:"status"`
	TotalCents    int64                 `json:"total_cents"`
	Items         []LineItemPayload     `json:"items"`
	Address       AddressPayload        `json:"address"`
	History       []StatusChangePayload `json:"history"`
	CreatedAt     time.Time             `json:"created_at"`
}

// OrderSummaryPayload is one row in the order list.
type OrderSummaryPayload struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	VendorName string    `json:"vendor_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DeliveryPayload is the full delivery representation. Timeline and
// StatusHistory carry the same entries for consumers expecting either name.
type DeliveryPayload struct {
	ID            string                `json:"id"`
	OrderID       string                `json:"order_id,omitempty"`
	OrderNumber   string                `json:"order_number"`
	CustomerName  string                `json:"customer_name"`
	VendorName    string                `json:"vendor_name,omitempty"`
	Status        string                `json:"status"`
	TotalCents    int64                 `json:"total_cents"`
	Items         []LineItemPayload     `json:"items"`
	Address       AddressPayload        `json:"address"`
	Timeline      []StatusChangePayload `json:"timeline"`
	StatusHistory []StatusChangePayload `json:"status_history"`
	CreatedAt     time.Time             `json:"created_at"`
}

// DeliverySummaryPayload is one row in the delivery list.
type DeliverySummaryPayload struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	VendorName   string    `json:"vendor_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateStatusResponse wraps the updated record. Exactly one of Order and
// Delivery is set. Warnings carries the propagation gap marker; AlreadyInStatus
// marks the idempotent no-op.
type UpdateStatusResponse struct {
	Order           *OrderPayload    `json:"order,omitempty"`
	Delivery        *DeliveryPayload `json:"delivery,omitempty"`
	AlreadyInStatus bool             `json:"already_in_status,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
}

// WarningPropagationIncomplete marks a status update whose counterpart record
// could not be converged; the reconciliation job repairs it later.
const WarningPropagationIncomplete = "counterpart record not yet updated"

func changePayloads(changes []status.Change) []StatusChangePayload {
	payloads := make([]StatusChangePayload, 0, len(changes))
	for _, c := range changes {
		payloads = append(payloads, StatusChangePayload{
			Status: c.Status.String(),
			At:     c.At,
			By:     c.By,
			Note:   c.Note,
		})
	}
	return payloads
}

func itemPayloads(items []order.LineItem) []LineItemPayload {
	payloads := make([]LineItemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, LineItemPayload{
			ListingID:      item.ListingID().String(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
			SubtotalCents:  item.SubtotalCents(),
		})
	}
	return payloads
}

func orderPayload(o *order.Order) *OrderPayload {
	addr := o.DeliveryAddress()
	return &OrderPayload{
		ID:            o.ID().String(),
		Number:        o.Number(),
		PurchaserName: o.PurchaserName(),
		VendorName:    o.VendorName(),
		Status:        o.Status().String(),
		TotalCents:    o.TotalCents(),
		Items:         itemPayloads(o.Items()),
		Address: AddressPayload{
			Street:     addr.Street(),
			City:       addr.City(),
			Region:     addr.Region(),
			PostalCode: addr.PostalCode(),
		},
		History:   changePayloads(o.History()),
		CreatedAt: o.CreatedAt(),
	}
}

func deliveryPayload(d *delivery.Delivery) *DeliveryPayload {
	addr := d.Address()

	var orderID string
	if d.OrderID() != nil {
		orderID = d.OrderID().String()
	}

	ledger := changePayloads(d.Timeline())
	return &DeliveryPayload{
		ID:           d.ID().String(),
		OrderID:      orderID,
		OrderNumber:  d.OrderNumber(),
		CustomerName: d.CustomerName(),
		VendorName:   d.VendorName(),
		Status:       d.Status().String(),
		TotalCents:   d.TotalCents(),
		Items:        itemPayloads(d.Items()),
		Address: AddressPayload{
			Street:     addr.Street(),
			City:       addr.City(),
			Region:     addr.Region(),
			PostalCode: addr.PostalCode(),
		},
		Timeline:      ledger,
		StatusHistory: ledger,
		CreatedAt:     d.CreatedAt(),
	}
}

func queryItemPayloads(items []queries.LineItemView) []LineItemPayload {
	payloads := make([]LineItemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, LineItemPayload{
			ListingID:      item.ListingID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}
	return payloads
}

func queryChangePayloads(changes []queries.StatusChangeView) []StatusChangePayload {
	payloads := make([]StatusChangePayload, 0, len(changes))
	for _, c := range changes {
		payloads = append(payloads, StatusChangePayload{
			Status: c.Status,
			At:     c.At,
			By:     c.By,
			Note:   c.Note,
		})
	}
	return payloads
}

func queryAddressPayload(a queries.AddressView) AddressPayload {
	return AddressPayload{
		Street:     a.Street,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
	}
}
