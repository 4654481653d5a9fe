// Package buybackorderrepo provides persistence for sellers' purchases of buyback inventory.
package buybackorderrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuybackOrderDTO represents the database structure for buyback orders.
type BuybackOrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShippingFee     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          int             `gorm:"not null;index"`
	ShippingAddress string          `gorm:"type:text;not null"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null"`
	TrackingNumber  string          `gorm:"type:varchar(32)"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	UpdatedAt       time.Time       `gorm:"not null"`
	Version         int             `gorm:"not null;default:1"`
	Lines           []LineDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (BuybackOrderDTO) TableName() string {
	return "buyback_orders"
}

// LineDTO is one purchased inventory item with the price paid.
type LineDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Position  int             `gorm:"not null"`
	Title     string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "buyback_order_lines"
}

func fromDomain(o *buybackorder.BuybackOrder) BuybackOrderDTO {
	orderID := o.ID().Bytes()
	lines := make([]LineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, LineDTO{
			OrderID:   orderID,
			ItemID:    l.ItemID.Bytes(),
			Position:  i,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	return BuybackOrderDTO{
		ID:              orderID,
		SellerID:        o.SellerID().Bytes(),
		ShippingFee:     o.ShippingFee(),
		Status:          int(o.Status()),
		ShippingAddress: o.Address().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		TrackingNumber:  o.TrackingNumber().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
		Lines:           lines,
	}
}

func toDomain(dto BuybackOrderDTO) (*buybackorder.BuybackOrder, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	sellerID, sellerErr := kernel.UUIDFromBytes(dto.SellerID[:])
	address, addressErr := kernel.NewAddress(dto.ShippingAddress)
	payment, paymentErr := kernel.NewPaymentMethod(dto.PaymentMethod)
	if err := errors.Join(idErr, sellerErr, addressErr, paymentErr); err != nil {
		return nil, err
	}

	lines := make([]buybackorder.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		itemID, err := kernel.UUIDFromBytes(l.ItemID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, buybackorder.Line{
			ItemID:    itemID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	return buybackorder.RestoreBuybackOrder(buybackorder.Snapshot{
		ID:             id,
		SellerID:       sellerID,
		Lines:          lines,
		ShippingFee:    dto.ShippingFee,
		Address:        address,
		PaymentMethod:  payment,
		TrackingNumber: kernel.TrackingNumber(dto.TrackingNumber),
		Status:         buybackorder.Status(dto.Status),
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
		Version:        dto.Version,
	})
}
