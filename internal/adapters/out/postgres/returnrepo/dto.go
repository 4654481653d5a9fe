// Package returnrepo persists return requests and their returned items.
package returnrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnDTO represents the database structure for return requests. The composite index
// serves the auto-completion sweep.
type ReturnDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Reason       string          `gorm:"type:text;not null"`
	Description  string          `gorm:"type:text"`
	Status       int             `gorm:"not null;index:idx_return_requests_status_updated,priority:1"`
	AdminNotes   string          `gorm:"type:text"`
	SellerNotes  string          `gorm:"type:text"`
	RefundAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null;index:idx_return_requests_status_updated,priority:2"`
	Version      int             `gorm:"not null;default:1"`
	Items        []ItemDTO       `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
}

func (ReturnDTO) TableName() string {
	return "return_requests"
}

// ItemDTO is one returned order line with the price paid for it.
type ItemDTO struct {
	ReturnID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Title     string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "return_items"
}

func fromDomain(r *returns.ReturnRequest) ReturnDTO {
	returnID := r.ID().Bytes()
	items := make([]ItemDTO, 0, len(r.Items()))
	for i, item := range r.Items() {
		items = append(items, ItemDTO{
			ReturnID:  returnID,
			BookID:    item.BookID.Bytes(),
			Position:  i,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return ReturnDTO{
		ID:           returnID,
		OrderID:      r.OrderID().Bytes(),
		CustomerID:   r.CustomerID().Bytes(),
		SellerID:     r.SellerID().Bytes(),
		Reason:       r.Reason(),
		Description:  r.Description(),
		Status:       int(r.Status()),
		AdminNotes:   r.AdminNotes(),
		SellerNotes:  r.SellerNotes(),
		RefundAmount: r.RefundAmount(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
		Version:      r.Version(),
		Items:        items,
	}
}

func toDomain(dto ReturnDTO) (*returns.ReturnRequest, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	orderID, orderErr := kernel.UUIDFromBytes(dto.OrderID[:])
	customerID, customerErr := kernel.UUIDFromBytes(dto.CustomerID[:])
	sellerID, sellerErr := kernel.UUIDFromBytes(dto.SellerID[:])
	if err := errors.Join(idErr, orderErr, customerErr, sellerErr); err != nil {
		return nil, err
	}

	items := make([]returns.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		bookID, err := kernel.UUIDFromBytes(item.BookID[:])
		if err != nil {
			return nil, err
		}
		items = append(items, returns.Item{
			BookID:    bookID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return returns.RestoreReturnRequest(returns.Snapshot{
		ID:           id,
		OrderID:      orderID,
		CustomerID:   customerID,
		SellerID:     sellerID,
		Items:        items,
		Reason:       dto.Reason,
		Description:  dto.Description,
		Status:       returns.Status(dto.Status),
		AdminNotes:   dto.AdminNotes,
		SellerNotes:  dto.SellerNotes,
		RefundAmount: dto.RefundAmount,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		Version:      dto.Version,
	})
}

func toDomainList(dtos []ReturnDTO) ([]*returns.ReturnRequest, error) {
	list := make([]*returns.ReturnRequest, 0, len(dtos))
	for _, dto := range dtos {
		r, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, nil
}
