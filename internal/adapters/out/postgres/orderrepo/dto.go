// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by buyer, seller and status for the per-actor listings.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShippingFee     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          int             `gorm:"not null;index"`
	ShippingAddress string          `gorm:"type:text;not null"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null"`
	TrackingNumber  string          `gorm:"type:varchar(32)"`
	RejectionReason string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	UpdatedAt       time.Time       `gorm:"not null"`
	Version         int             `gorm:"not null;default:1"`
	Items           []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Title and unit price are snapshots taken at placement.
type ItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Title     string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			BookID:    item.BookID().Bytes(),
			Position:  i,
			Title:     item.Title(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		BuyerID:         o.BuyerID().Bytes(),
		SellerID:        o.SellerID().Bytes(),
		ShippingFee:     o.ShippingFee(),
		Status:          int(o.Status()),
		ShippingAddress: o.ShippingAddress().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		TrackingNumber:  o.TrackingNumber().String(),
		RejectionReason: o.RejectionReason(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
		Items:           items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
// Items are expected in Position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	buyerID, buyerErr := kernel.UUIDFromBytes(dto.BuyerID[:])
	sellerID, sellerErr := kernel.UUIDFromBytes(dto.SellerID[:])
	address, addressErr := kernel.NewAddress(dto.ShippingAddress)
	payment, paymentErr := kernel.NewPaymentMethod(dto.PaymentMethod)
	if err := errors.Join(idErr, buyerErr, sellerErr, addressErr, paymentErr); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		bookID, err := kernel.UUIDFromBytes(itemDTO.BookID[:])
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(bookID, itemDTO.Title, itemDTO.UnitPrice, itemDTO.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		BuyerID:         buyerID,
		SellerID:        sellerID,
		Items:           items,
		ShippingFee:     dto.ShippingFee,
		Status:          order.Status(dto.Status),
		ShippingAddress: address,
		PaymentMethod:   payment,
		TrackingNumber:  kernel.TrackingNumber(dto.TrackingNumber),
		RejectionReason: dto.RejectionReason,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		Version:         dto.Version,
	})
}
