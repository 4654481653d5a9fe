package buybackrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// inventoryTable holds the item materialised at approval; its stock is reported on the request.
const inventoryTable = "buyback_inventory"

// GormBuybackRepository implements BuybackRepository using GORM.
type GormBuybackRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBuybackRepository(db *gorm.DB, tracker aggregateTracker) *GormBuybackRepository {
	return &GormBuybackRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new buyback request.
func (r *GormBuybackRepository) Add(ctx context.Context, aggregate *buyback.BuybackRequest) error {
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

// Update writes the decision fields with a compare-and-swap on the version.
func (r *GormBuybackRepository) Update(ctx context.Context, aggregate *buyback.BuybackRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&BuybackRequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":              dto.Status,
			"selling_price":       dto.SellingPrice,
			"price_change_reason": dto.PriceChangeReason,
			"rejection_reason":    dto.RejectionReason,
			"updated_at":          dto.UpdatedAt,
			"version":             next,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current BuybackRequestDTO
		err := r.db.WithContext(ctx).Select("status", "version").First(&current, "id = ?", dto.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("buyback request", aggregate.ID().String())
		}
		if err != nil {
			return err
		}
		return errs.NewStateConflictErrorWithCause("buyback request", buyback.Status(current.Status).String(), "update",
			fmt.Errorf("version %d was superseded by version %d", aggregate.Version(), current.Version))
	}

	aggregate.SetVersion(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request together with the stock of its inventory item, if one exists.
func (r *GormBuybackRepository) Get(ctx context.Context, id kernel.UUID) (*buyback.BuybackRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BuybackRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("buyback request", id.String())
		}
		return nil, err
	}

	var stock int
	if err := r.db.WithContext(ctx).Table(inventoryTable).
		Select("COALESCE(SUM(stock), 0)").
		Where("buyback_request_id = ?", dto.ID).
		Scan(&stock).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, stock)
}
