package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item. A second item for the same request violates the unique index.
func (r *GormInventoryRepository) Add(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("buyback request", "approved", "materialize", err)
		}
		return err
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormInventoryRepository) GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*inventory.Item, error) {
	items := make(map[kernel.UUID]*inventory.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, id.Bytes())
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", keys).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items[item.ID()] = item
	}
	return items, nil
}

// TakeStock decrements stock only while enough is left.
func (r *GormInventoryRepository) TakeStock(ctx context.Context, id kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ? AND stock >= ?", id.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.shortage(ctx, id, quantity)
	}
	return nil
}

func (r *GormInventoryRepository) ReturnStock(ctx context.Context, id kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", id.Bytes()).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("inventory item", id.String())
	}
	return nil
}

func (r *GormInventoryRepository) shortage(ctx context.Context, id kernel.UUID, quantity int) error {
	var dto ItemDTO
	err := r.db.WithContext(ctx).Select("stock").First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("inventory item", id.String())
	}
	if err != nil {
		return err
	}
	return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, dto.Stock)
}
