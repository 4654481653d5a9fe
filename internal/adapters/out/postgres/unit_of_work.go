// Package postgres provides the GORM-based Unit of Work used by every command handler.
// The Unit of Work keeps one database transaction open across the repositories a
// business operation touches and records the aggregates it wrote.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// All operations share the transaction
//	if err := uow.BuybackRepository().Update(ctx, request); err != nil {
//	    return err
//	}
//	if err := uow.InventoryRepository().Add(ctx, item); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns its transaction; goroutines must not share one
//   - Aggregate rows are guarded by version compare-and-swap, stock by conditional updates
//   - OrderRepository().GetForUpdate takes a row lock for the rest of the transaction
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/buybackorderrepo"
	"marketplace/internal/adapters/out/postgres/buybackrepo"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/inventoryrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/returnrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/dberr"

	"gorm.io/gorm"
)

// Models lists every persisted structure in dependency order.
func Models() []any {
	return []any{
		&catalogrepo.BookDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&buybackrepo.BuybackRequestDTO{},
		&inventoryrepo.ItemDTO{},
		&cartrepo.LineDTO{},
		&buybackorderrepo.BuybackOrderDTO{},
		&buybackorderrepo.LineDTO{},
		&returnrepo.ReturnDTO{},
		&returnrepo.ItemDTO{},
	}
}

// Migrate creates or updates the schema for all marketplace tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work isolated from concurrent ones.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion, for callers that narrow the
// unit of work to a workflow-specific interface.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin again on an active unit
// of work does not nest transactions. An unreachable database is reported as
// errs.UnavailableError.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dberr.Classify(tx.Error)
	}
	uow.tx = tx

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return dberr.Classify(err)
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the plain connection outside one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BuybackRepository() ports.BuybackRepository {
	return buybackrepo.NewGormBuybackRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

func (uow *GormUnitOfWork) BuybackOrderRepository() ports.BuybackOrderRepository {
	return buybackorderrepo.NewGormBuybackOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReturnRepository() ports.ReturnRepository {
	return returnrepo.NewGormReturnRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BookCatalog() ports.BookCatalog {
	return catalogrepo.NewGormBookCatalog(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work. Called by
// the repositories after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes this unit of work has seen.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
