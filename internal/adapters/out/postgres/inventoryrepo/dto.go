// Package inventoryrepo persists the buyback inventory: one purchasable item per
// approved buyback request.
package inventoryrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO represents the database structure for inventory items. The unique index on
// the request id keeps approval from materialising a second item.
type ItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BuybackRequestID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Book             BookDTO         `gorm:"embedded;embeddedPrefix:book_"`
	SellingPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock            int             `gorm:"not null;check:stock >= 0"`
	CreatedAt        time.Time       `gorm:"not null;index"`
}

func (ItemDTO) TableName() string {
	return "buyback_inventory"
}

// BookDTO is the bibliographic description copied from the buyback request.
type BookDTO struct {
	Title     string          `gorm:"type:varchar(255);not null"`
	Author    string          `gorm:"type:varchar(255)"`
	ISBN      string          `gorm:"column:isbn;type:varchar(13)"`
	Publisher string          `gorm:"type:varchar(255)"`
	Edition   string          `gorm:"type:varchar(100)"`
	MRP       decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);not null;default:0"`
}

func fromDomain(item *inventory.Item) ItemDTO {
	book := item.Book()
	return ItemDTO{
		ID:               item.ID().Bytes(),
		BuybackRequestID: item.BuybackRequestID().Bytes(),
		Book: BookDTO{
			Title:     book.Title(),
			Author:    book.Author(),
			ISBN:      book.ISBN(),
			Publisher: book.Publisher(),
			Edition:   book.Edition(),
			MRP:       book.MRP(),
		},
		SellingPrice: item.SellingPrice(),
		Stock:        item.Stock(),
		CreatedAt:    item.CreatedAt(),
	}
}

func toDomain(dto ItemDTO) (*inventory.Item, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	requestID, requestErr := kernel.UUIDFromBytes(dto.BuybackRequestID[:])
	book, bookErr := kernel.NewBookDetails(dto.Book.Title, dto.Book.Author, dto.Book.ISBN,
		dto.Book.Publisher, dto.Book.Edition, dto.Book.MRP)
	if err := errors.Join(idErr, requestErr, bookErr); err != nil {
		return nil, err
	}
	return inventory.RestoreItem(id, requestID, book, dto.SellingPrice, dto.Stock, dto.CreatedAt)
}
