package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/core/domain/model/returns"

	"github.com/shopspring/decimal"
)

// Requests.

type OrderLine struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items           []OrderLine `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type Book struct {
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ISBN      string          `json:"isbn"`
	Publisher string          `json:"publisher"`
	Edition   string          `json:"edition"`
	MRP       decimal.Decimal `json:"mrp"`
}

type Conditions struct {
	Page     string `json:"page"`
	Binding  string `json:"binding"`
	Cover    string `json:"cover"`
	Markings string `json:"markings"`
	Damage   string `json:"damage"`
	Tier     string `json:"tier"`
}

func (c Conditions) parse() quote.Conditions {
	return quote.ParseConditions(c.Page, c.Binding, c.Cover, c.Markings, c.Damage, c.Tier)
}

type SubmitBuybackRequest struct {
	Book        Book             `json:"book"`
	Conditions  Conditions       `json:"conditions"`
	QuotedPrice *decimal.Decimal `json:"quoted_price,omitempty"`
}

type ApproveBuybackRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price"`
	Reason       string          `json:"reason"`
}

type CartLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items           []CartLine `json:"items,omitempty"`
	ShippingAddress string     `json:"shipping_address"`
	PaymentMethod   string     `json:"payment_method"`
}

type BuyNowRequest struct {
	ItemID          string `json:"item_id"`
	Quantity        int    `json:"quantity"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type RequestReturnRequest struct {
	OrderID     string      `json:"order_id"`
	Items       []OrderLine `json:"items"`
	Reason      string      `json:"reason"`
	Description string      `json:"description"`
}

type DecideReturnRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

type RefundRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Notes  string           `json:"notes"`
}

// Responses.

type OrderItem struct {
	BookID    string          `json:"book_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID              string          `json:"id"`
	BuyerID         string          `json:"buyer_id"`
	SellerID        string          `json:"seller_id"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"status_label"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shipping_fee"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

type Quote struct {
	BasePrice    decimal.Decimal `json:"base_price"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	OfferedPrice decimal.Decimal `json:"offered_price"`
}

type BuybackRequest struct {
	ID                string          `json:"id"`
	SubmitterID       string          `json:"submitter_id"`
	Book              Book            `json:"book"`
	Conditions        Conditions      `json:"conditions"`
	OfferedPrice      decimal.Decimal `json:"offered_price"`
	Status            string          `json:"status"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	PriceChangeReason string          `json:"price_change_reason,omitempty"`
	RejectionReason   string          `json:"rejection_reason,omitempty"`
	Stock             int             `json:"stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

type InventoryItem struct {
	ID               string          `json:"id"`
	BuybackRequestID string          `json:"buyback_request_id"`
	Book             Book            `json:"book"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	Stock            int             `json:"stock"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Cart struct {
	SellerID string     `json:"seller_id"`
	Lines    []CartLine `json:"lines"`
}

type BuybackOrderLine struct {
	ItemID    string          `json:"item_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type BuybackOrder struct {
	ID              string             `json:"id"`
	SellerID        string             `json:"seller_id"`
	Status          string             `json:"status"`
	Lines           []BuybackOrderLine `json:"lines"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	ShippingFee     decimal.Decimal    `json:"shipping_fee"`
	Total           decimal.Decimal    `json:"total"`
	ShippingAddress string             `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	TrackingNumber  string             `json:"tracking_number"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Version         int                `json:"version"`
}

type ReturnItem struct {
	BookID    string          `json:"book_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type Return struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	CustomerID   string          `json:"customer_id"`
	SellerID     string          `json:"seller_id"`
	Items        []ReturnItem    `json:"items"`
	Reason       string          `json:"reason"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status"`
	AdminNotes   string          `json:"admin_notes,omitempty"`
	SellerNotes  string          `json:"seller_notes,omitempty"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

type ActivityEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

// Domain entities returned by commands.

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, i := range o.Items() {
		items = append(items, OrderItem{
			BookID:    i.BookID().String(),
			Title:     i.Title(),
			UnitPrice: i.UnitPrice(),
			Quantity:  i.Quantity(),
		})
	}
	return Order{
		ID:              o.ID().String(),
		BuyerID:         o.BuyerID().String(),
		SellerID:        o.SellerID().String(),
		Status:          o.Status().String(),
		StatusLabel:     o.Status().Label(),
		Items:           items,
		Subtotal:        o.Subtotal(),
		ShippingFee:     o.ShippingFee(),
		Total:           o.Total(),
		ShippingAddress: o.ShippingAddress().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		TrackingNumber:  o.TrackingNumber().String(),
		RejectionReason: o.RejectionReason(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
}

func buybackFromDomain(r *buyback.BuybackRequest) BuybackRequest {
	b, c := r.Book(), r.Conditions()
	return BuybackRequest{
		ID:          r.ID().String(),
		SubmitterID: r.SubmitterID().String(),
		Book: Book{
			Title:     b.Title(),
			Author:    b.Author(),
			ISBN:      b.ISBN(),
			Publisher: b.Publisher(),
			Edition:   b.Edition(),
			MRP:       b.MRP(),
		},
		Conditions: Conditions{
			Page:     string(c.Page),
			Binding:  string(c.Binding),
			Cover:    string(c.Cover),
			Markings: string(c.Markings),
			Damage:   string(c.Damage),
			Tier:     string(c.Tier),
		},
		OfferedPrice:      r.OfferedPrice(),
		Status:            r.Status().String(),
		SellingPrice:      r.SellingPrice(),
		PriceChangeReason: r.PriceChangeReason(),
		RejectionReason:   r.RejectionReason(),
		Stock:             r.Stock(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
		Version:           r.Version(),
	}
}

func cartFromDomain(c *cart.Cart) Cart {
	lines := make([]CartLine, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		lines = append(lines, CartLine{ItemID: l.ItemID.String(), Quantity: l.Quantity})
	}
	return Cart{SellerID: c.SellerID().String(), Lines: lines}
}

func buybackOrderFromDomain(o *buybackorder.BuybackOrder) BuybackOrder {
	lines := make([]BuybackOrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, BuybackOrderLine{
			ItemID:    l.ItemID.String(),
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return BuybackOrder{
		ID:              o.ID().String(),
		SellerID:        o.SellerID().String(),
		Status:          o.Status().String(),
		Lines:           lines,
		Subtotal:        o.Subtotal(),
		ShippingFee:     o.ShippingFee(),
		Total:           o.Total(),
		ShippingAddress: o.Address().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		TrackingNumber:  o.TrackingNumber().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
}

func returnFromDomain(r *returns.ReturnRequest) Return {
	items := make([]ReturnItem, 0, len(r.Items()))
	for _, i := range r.Items() {
		items = append(items, ReturnItem{
			BookID:    i.BookID.String(),
			Title:     i.Title,
			UnitPrice: i.UnitPrice,
			Quantity:  i.Quantity,
		})
	}
	return Return{
		ID:           r.ID().String(),
		OrderID:      r.OrderID().String(),
		CustomerID:   r.CustomerID().String(),
		SellerID:     r.SellerID().String(),
		Items:        items,
		Reason:       r.Reason(),
		Description:  r.Description(),
		Status:       r.Status().String(),
		AdminNotes:   r.AdminNotes(),
		SellerNotes:  r.SellerNotes(),
		RefundAmount: r.RefundAmount(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
		Version:      r.Version(),
	}
}

// Read models returned by queries.

func orderFromView(v queries.OrderView) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, i := range v.Items {
		items = append(items, OrderItem{
			BookID:    i.BookID.String(),
			Title:     i.Title,
			UnitPrice: i.UnitPrice,
			Quantity:  i.Quantity,
		})
	}
	return Order{
		ID:              v.ID.String(),
		BuyerID:         v.BuyerID.String(),
		SellerID:        v.SellerID.String(),
		Status:          v.Status,
		StatusLabel:     v.StatusLabel,
		Items:           items,
		Subtotal:        v.Subtotal,
		ShippingFee:     v.ShippingFee,
		Total:           v.Total,
		ShippingAddress: v.ShippingAddress,
		PaymentMethod:   v.PaymentMethod,
		TrackingNumber:  v.TrackingNumber,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		Version:         v.Version,
	}
}

func bookFromView(v queries.BookView) Book {
	return Book{
		Title:     v.Title,
		Author:    v.Author,
		ISBN:      v.ISBN,
		Publisher: v.Publisher,
		Edition:   v.Edition,
		MRP:       v.MRP,
	}
}

func buybackFromView(v queries.BuybackRequestView) BuybackRequest {
	return BuybackRequest{
		ID:          v.ID.String(),
		SubmitterID: v.SubmitterID.String(),
		Book:        bookFromView(v.Book),
		Conditions: Conditions{
			Page:     v.Conditions.Page,
			Binding:  v.Conditions.Binding,
			Cover:    v.Conditions.Cover,
			Markings: v.Conditions.Markings,
			Damage:   v.Conditions.Damage,
			Tier:     v.Conditions.Tier,
		},
		OfferedPrice:      v.OfferedPrice,
		Status:            v.Status,
		SellingPrice:      v.SellingPrice,
		PriceChangeReason: v.PriceChangeReason,
		RejectionReason:   v.RejectionReason,
		Stock:             v.Stock,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
		Version:           v.Version,
	}
}

func inventoryFromView(v queries.InventoryItemView) InventoryItem {
	return InventoryItem{
		ID:               v.ID.String(),
		BuybackRequestID: v.BuybackRequestID.String(),
		Book:             bookFromView(v.Book),
		SellingPrice:     v.SellingPrice,
		Stock:            v.Stock,
		CreatedAt:        v.CreatedAt,
	}
}

func buybackOrderFromView(v queries.BuybackOrderView) BuybackOrder {
	lines := make([]BuybackOrderLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, BuybackOrderLine{
			ItemID:    l.ItemID.String(),
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return BuybackOrder{
		ID:              v.ID.String(),
		SellerID:        v.SellerID.String(),
		Status:          v.Status,
		Lines:           lines,
		Subtotal:        v.Subtotal,
		ShippingFee:     v.ShippingFee,
		Total:           v.Total,
		ShippingAddress: v.ShippingAddress,
		PaymentMethod:   v.PaymentMethod,
		TrackingNumber:  v.TrackingNumber,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		Version:         v.Version,
	}
}

func returnFromView(v queries.ReturnView) Return {
	items := make([]ReturnItem, 0, len(v.Items))
	for _, i := range v.Items {
		items = append(items, ReturnItem{
			BookID:    i.BookID.String(),
			Title:     i.Title,
			UnitPrice: i.UnitPrice,
			Quantity:  i.Quantity,
		})
	}
	return Return{
		ID:           v.ID.String(),
		OrderID:      v.OrderID.String(),
		CustomerID:   v.CustomerID.String(),
		SellerID:     v.SellerID.String(),
		Items:        items,
		Reason:       v.Reason,
		Description:  v.Description,
		Status:       v.Status,
		AdminNotes:   v.AdminNotes,
		SellerNotes:  v.SellerNotes,
		RefundAmount: v.RefundAmount,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
		Version:      v.Version,
	}
}

func activityFromDomain(e activity.Entry) ActivityEntry {
	return ActivityEntry{
		ID:          e.ID.String(),
		Type:        string(e.Type),
		Description: e.Description,
		At:          e.At,
	}
}

func mapAll[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
