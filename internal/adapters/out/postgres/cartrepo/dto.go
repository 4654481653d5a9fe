// Package cartrepo stores seller carts as ordered line rows.
package cartrepo

import (
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// LineDTO is one cart line. A seller has at most one line per item.
type LineDTO struct {
	SellerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity int       `gorm:"not null;check:quantity > 0"`
	Position int       `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(c *cart.Cart) []LineDTO {
	lines := c.Lines()
	dtos := make([]LineDTO, 0, len(lines))
	for i, l := range lines {
		dtos = append(dtos, LineDTO{
			SellerID: c.SellerID().Bytes(),
			ItemID:   l.ItemID.Bytes(),
			Quantity: l.Quantity,
			Position: i,
		})
	}
	return dtos
}

func toDomain(sellerID kernel.UUID, dtos []LineDTO) (*cart.Cart, error) {
	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, cart.Line{ItemID: itemID, Quantity: dto.Quantity})
	}
	return cart.Restore(sellerID, lines)
}
