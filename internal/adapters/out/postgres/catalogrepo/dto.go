// Package catalogrepo persists seller book listings and reserves their stock for orders.
package catalogrepo

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookDTO is a seller's listing. Stock is kept non-negative by a check constraint.
type BookDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title    string          `gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock    int             `gorm:"not null;check:stock >= 0"`
}

func (BookDTO) TableName() string {
	return "books"
}

func fromDomain(b catalog.Book) BookDTO {
	return BookDTO{
		ID:       b.ID().Bytes(),
		SellerID: b.SellerID().Bytes(),
		Title:    b.Title(),
		Price:    b.Price(),
		Stock:    b.Stock(),
	}
}

func toDomain(dto BookDTO) (catalog.Book, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Book{}, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return catalog.Book{}, err
	}
	return catalog.RestoreBook(id, sellerID, dto.Title, dto.Price, dto.Stock)
}
