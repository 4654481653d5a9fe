package cartrepo

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get returns the seller's cart; a seller without stored lines gets an empty cart.
func (r *GormCartRepository) Get(ctx context.Context, sellerID kernel.UUID) (*cart.Cart, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LineDTO
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID.Bytes()).
		Order("position").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomain(sellerID, dtos)
}

// Save replaces the stored lines with the cart's current lines.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if c == nil {
		return errs.NewValueIsRequiredError("cart")
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("seller_id = ?", c.SellerID().Bytes()).Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	dtos := fromDomain(c)
	if len(dtos) == 0 {
		return nil
	}
	return db.Create(&dtos).Error
}
