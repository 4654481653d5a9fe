// Package buybackrepo provides data transfer objects and mapping functions for buyback
// request persistence.
package buybackrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuybackRequestDTO represents the database structure for persisting buyback requests.
// Stock is not a column: it lives on the inventory item created at approval.
type BuybackRequestDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SubmitterID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Book              BookDTO         `gorm:"embedded;embeddedPrefix:book_"`
	Conditions        ConditionsDTO   `gorm:"embedded;embeddedPrefix:condition_"`
	OfferedPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status            int             `gorm:"not null;index"`
	SellingPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PriceChangeReason string          `gorm:"type:text"`
	RejectionReason   string          `gorm:"type:text"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	UpdatedAt         time.Time       `gorm:"not null"`
	Version           int             `gorm:"not null;default:1"`
}

// TableName specifies the database table name for buyback requests.
func (BuybackRequestDTO) TableName() string {
	return "buyback_requests"
}

// BookDTO is the embedded bibliographic description of the offered book.
type BookDTO struct {
	Title     string          `gorm:"type:varchar(255);not null"`
	Author    string          `gorm:"type:varchar(255)"`
	ISBN      string          `gorm:"column:isbn;type:varchar(13)"`
	Publisher string          `gorm:"type:varchar(255)"`
	Edition   string          `gorm:"type:varchar(100)"`
	MRP       decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);not null;default:0"`
}

// ConditionsDTO stores the condition selectors by their canonical names.
type ConditionsDTO struct {
	Page     string `gorm:"type:varchar(32);not null"`
	Binding  string `gorm:"type:varchar(32);not null"`
	Cover    string `gorm:"type:varchar(32);not null"`
	Markings string `gorm:"type:varchar(32);not null"`
	Damage   string `gorm:"type:varchar(32);not null"`
	Tier     string `gorm:"type:varchar(32);not null"`
}

func fromDomain(r *buyback.BuybackRequest) BuybackRequestDTO {
	book := r.Book()
	c := r.Conditions()
	return BuybackRequestDTO{
		ID:          r.ID().Bytes(),
		SubmitterID: r.SubmitterID().Bytes(),
		Book: BookDTO{
			Title:     book.Title(),
			Author:    book.Author(),
			ISBN:      book.ISBN(),
			Publisher: book.Publisher(),
			Edition:   book.Edition(),
			MRP:       book.MRP(),
		},
		Conditions: ConditionsDTO{
			Page:     string(c.Page),
			Binding:  string(c.Binding),
			Cover:    string(c.Cover),
			Markings: string(c.Markings),
			Damage:   string(c.Damage),
			Tier:     string(c.Tier),
		},
		OfferedPrice:      r.OfferedPrice(),
		Status:            int(r.Status()),
		SellingPrice:      r.SellingPrice(),
		PriceChangeReason: r.PriceChangeReason(),
		RejectionReason:   r.RejectionReason(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
		Version:           r.Version(),
	}
}

func toDomain(dto BuybackRequestDTO, stock int) (*buyback.BuybackRequest, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	submitterID, submitterErr := kernel.UUIDFromBytes(dto.SubmitterID[:])
	book, bookErr := kernel.NewBookDetails(dto.Book.Title, dto.Book.Author, dto.Book.ISBN,
		dto.Book.Publisher, dto.Book.Edition, dto.Book.MRP)
	if err := errors.Join(idErr, submitterErr, bookErr); err != nil {
		return nil, err
	}

	return buyback.RestoreBuybackRequest(buyback.Snapshot{
		ID:          id,
		SubmitterID: submitterID,
		Book:        book,
		Conditions: quote.ParseConditions(dto.Conditions.Page, dto.Conditions.Binding, dto.Conditions.Cover,
			dto.Conditions.Markings, dto.Conditions.Damage, dto.Conditions.Tier),
		OfferedPrice:      dto.OfferedPrice,
		Status:            buyback.Status(dto.Status),
		SellingPrice:      dto.SellingPrice,
		PriceChangeReason: dto.PriceChangeReason,
		RejectionReason:   dto.RejectionReason,
		Stock:             stock,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		Version:           dto.Version,
	})
}
