package returnrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return and its items.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *returns.ReturnRequest) error {
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

// Update writes the decision fields with a compare-and-swap on the version. Items are
// fixed at creation.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *returns.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&ReturnDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":        dto.Status,
			"admin_notes":   dto.AdminNotes,
			"seller_notes":  dto.SellerNotes,
			"refund_amount": dto.RefundAmount,
			"updated_at":    dto.UpdatedAt,
			"version":       next,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current ReturnDTO
		err := r.db.WithContext(ctx).Select("status", "version").First(&current, "id = ?", dto.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("return", aggregate.ID().String())
		}
		if err != nil {
			return err
		}
		return errs.NewStateConflictErrorWithCause("return", returns.Status(current.Status).String(), "update",
			fmt.Errorf("version %d was superseded by version %d", aggregate.Version(), current.Version))
	}

	aggregate.SetVersion(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormReturnRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.ReturnRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	if err := r.withItems(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListRefundedBefore returns the oldest refund-issued returns first.
func (r *GormReturnRepository) ListRefundedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*returns.ReturnRequest, error) {
	query := r.withItems(ctx).
		Where("status = ? AND updated_at <= ?", int(returns.RefundIssued), cutoff).
		Order("updated_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ReturnDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormReturnRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") })
}
