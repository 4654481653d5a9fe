package queries

import (
	"context"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListBuybackRequestsQueryHandler struct {
	db *gorm.DB
}

func NewListBuybackRequestsQueryHandler(db *gorm.DB) ListBuybackRequestsQueryHandler {
	return ListBuybackRequestsQueryHandler{db: db}
}

// Handle returns requests newest first, with the stock of their inventory item.
func (h ListBuybackRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListBuybackRequestsQuery,
) ([]BuybackRequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("buyback_requests AS r").
		Joins("LEFT JOIN buyback_inventory AS i ON i.buyback_request_id = r.id")
	switch actor := query.Actor(); actor.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleCustomer:
		db = db.Where("r.submitter_id = ?", actor.ID().Bytes())
	default:
		return []BuybackRequestView{}, nil
	}
	if status, ok := query.Status(); ok {
		db = db.Where("r.status = ?", int(status))
	}

	rows, err := db.Select(`
		r.id,
		r.submitter_id,
		r.book_title,
		r.book_author,
		r.book_isbn,
		r.book_publisher,
		r.book_edition,
		r.book_mrp,
		r.condition_page,
		r.condition_binding,
		r.condition_cover,
		r.condition_markings,
		r.condition_damage,
		r.condition_tier,
		r.offered_price,
		r.status,
		r.selling_price,
		r.price_change_reason,
		r.rejection_reason,
		COALESCE(i.stock, 0),
		r.created_at,
		r.updated_at,
		r.version`).
		Order("r.created_at DESC, r.id").
		Limit(query.Limit()).
		Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer rows.Close()

	requests := make([]BuybackRequestView, 0)
	for rows.Next() {
		var (
			view                BuybackRequestView
			id, submitterID     uuid.UUID
			author, isbn        *string
			publisher, edition  *string
			status              int
			priceReason, reject *string
		)
		err = rows.Scan(
			&id,
			&submitterID,
			&view.Book.Title,
			&author,
			&isbn,
			&publisher,
			&edition,
			&view.Book.MRP,
			&view.Conditions.Page,
			&view.Conditions.Binding,
			&view.Conditions.Cover,
			&view.Conditions.Markings,
			&view.Conditions.Damage,
			&view.Conditions.Tier,
			&view.OfferedPrice,
			&status,
			&view.SellingPrice,
			&priceReason,
			&reject,
			&view.Stock,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Version,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := toKernelIDs(id, submitterID)
		if idErr != nil {
			return nil, idErr
		}
		view.ID, view.SubmitterID = ids[0], ids[1]
		view.Book.Author = deref(author)
		view.Book.ISBN = deref(isbn)
		view.Book.Publisher = deref(publisher)
		view.Book.Edition = deref(edition)
		view.Status = buyback.Status(status).String()
		view.PriceChangeReason = deref(priceReason)
		view.RejectionReason = deref(reject)
		requests = append(requests, view)
	}
	if err = rows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}

	return requests, nil
}
