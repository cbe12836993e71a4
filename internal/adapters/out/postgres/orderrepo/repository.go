package orderrepo

import (
	"context"
	"encoding/json"
	"errors"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusGuarded sets the new status and appends the ledger entry in one
// conditional statement. The write only lands if the stored status still
// equals expected; otherwise no row changes and errs.ErrStatusConflict is
// returned so the caller can re-read and re-validate.
func (r *GormOrderRepository) UpdateStatusGuarded(
	ctx context.Context, id kernel.UUID, expected status.Status, entry status.Change,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	entryJSON, err := json.Marshal(ChangeFromDomain(entry))
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET status = ?,
		    history = COALESCE(history, '[]'::jsonb) || ?::jsonb
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
