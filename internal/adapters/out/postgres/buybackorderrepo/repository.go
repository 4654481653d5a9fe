package buybackorderrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBuybackOrderRepository implements BuybackOrderRepository using GORM.
type GormBuybackOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBuybackOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormBuybackOrderRepository {
	return &GormBuybackOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its lines.
func (r *GormBuybackOrderRepository) Add(ctx context.Context, aggregate *buybackorder.BuybackOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("buyback order", aggregate.Status().String(), "add", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes status and timestamp with a compare-and-swap on the version.
func (r *GormBuybackOrderRepository) Update(ctx context.Context, aggregate *buybackorder.BuybackOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&BuybackOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
			"version":    next,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current BuybackOrderDTO
		err := r.db.WithContext(ctx).Select("status", "version").First(&current, "id = ?", dto.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("buyback order", aggregate.ID().String())
		}
		if err != nil {
			return err
		}
		return errs.NewStateConflictErrorWithCause("buyback order", buybackorder.Status(current.Status).String(), "update",
			fmt.Errorf("version %d was superseded by version %d", aggregate.Version(), current.Version))
	}

	aggregate.SetVersion(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBuybackOrderRepository) Get(ctx context.Context, id kernel.UUID) (*buybackorder.BuybackOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BuybackOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("buyback order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
