package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookCatalog implements BookCatalog using GORM.
type GormBookCatalog struct {
	db *gorm.DB
}

func NewGormBookCatalog(db *gorm.DB) *GormBookCatalog {
	return &GormBookCatalog{db: db}
}

// Add lists a book. Listings are managed outside the transaction engine; Add exists
// for seeding and tests.
func (r *GormBookCatalog) Add(ctx context.Context, b catalog.Book) error {
	dto := fromDomain(b)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetBooks returns the listings found for ids, keyed by id.
func (r *GormBookCatalog) GetBooks(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Book, error) {
	books := make(map[kernel.UUID]catalog.Book, len(ids))
	if len(ids) == 0 {
		return books, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []BookDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		books[b.ID()] = b
	}
	return books, nil
}

// Reserve decrements stock in one conditional statement; zero affected rows means the
// listing is gone or short.
func (r *GormBookCatalog) Reserve(ctx context.Context, bookID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&BookDTO{}).
		Where("id = ? AND stock >= ?", bookID.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.shortage(ctx, bookID, quantity)
	}
	return nil
}

// Release gives reserved copies back to the listing.
func (r *GormBookCatalog) Release(ctx context.Context, bookID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&BookDTO{}).
		Where("id = ?", bookID.Bytes()).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("book", bookID.String())
	}
	return nil
}

func (r *GormBookCatalog) shortage(ctx context.Context, bookID kernel.UUID, quantity int) error {
	var dto BookDTO
	err := r.db.WithContext(ctx).Select("stock").Where("id = ?", bookID.Bytes()).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("book", bookID.String())
	}
	if err != nil {
		return err
	}
	return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, dto.Stock)
}
