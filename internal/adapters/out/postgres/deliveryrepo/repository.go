package deliveryrepo

import (
	"context"
	"encoding/json"
	"errors"

	"freshmarket/internal/adapters/out/postgres/orderrepo"
	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderRef locates the delivery paired with an order. Lookup prefers the
// structured order ID and falls back to the shared order number, which is the
// only link records without an order reference carry.
func (r *GormDeliveryRepository) GetByOrderRef(
	ctx context.Context, orderID *kernel.UUID, orderNumber string,
) (*delivery.Delivery, error) {
	var dto DeliveryDTO

	if orderID != nil {
		err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
		if err == nil {
			return toDomain(dto)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusGuarded sets the new status and appends the ledger entry in one
// conditional statement, same contract as orderrepo.
func (r *GormDeliveryRepository) UpdateStatusGuarded(
	ctx context.Context, id kernel.UUID, expected status.Status, entry status.Change,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	entryJSON, err := json.Marshal(orderrepo.ChangeFromDomain(entry))
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE deliveries
		SET status = ?,
		    ledger = COALESCE(ledger, '[]'::jsonb) || ?::jsonb
		WHERE id = ? AND status = ?
	`, int(entry.Status), string(entryJSON), id.Bytes(), int(expected))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.ErrStatusConflict
	}

	return nil
}

// GetOutOfSync retrieves up to limit deliveries whose status differs from
// their paired order's status. Pairs are matched by order ID when present,
// otherwise by shared order number.
func (r *GormDeliveryRepository) GetOutOfSync(ctx context.Context, limit int) ([]*delivery.Delivery, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.*
		FROM deliveries d
		JOIN orders o
		  ON (d.order_id IS NOT NULL AND d.order_id = o.id)
		  OR (d.order_id IS NULL AND d.order_number = o.number)
		WHERE d.status <> o.status
		ORDER BY d.created_at
		LIMIT ?
	`, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
