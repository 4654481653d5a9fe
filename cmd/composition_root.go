package cmd

import (
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/activitylog"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	activityLog ports.ActivityLog
	notifier    ports.Notifier
	shipping    services.ShippingPolicy
	metrics     *metrics.Metrics
	logger      *slog.Logger
	closers     []func() error
}

// NewCompositionRoot wires the adapters. Without Kafka brokers notifications are
// logged; without a Redis address the activity log lives in memory.
func NewCompositionRoot(config Config, gormDB *gorm.DB, m *metrics.Metrics, logger *slog.Logger) (*CompositionRoot, error) {
	shipping, err := services.NewShippingPolicy(config.ShippingFee, config.FreeShippingThreshold)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		shipping:   shipping,
		metrics:    m,
		logger:     logger,
	}

	if len(config.KafkaBrokers) > 0 {
		kafkaNotifier := notify.NewKafkaNotifier(config.KafkaBrokers, config.KafkaNotificationTopic)
		c.notifier = kafkaNotifier
		c.closers = append(c.closers, kafkaNotifier.Close)
	} else {
		c.notifier = notify.NewLogNotifier(logger)
	}

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		c.activityLog = activitylog.NewRedisLog(client, config.RedisActivityKey, config.ActivityCapacity)
		c.closers = append(c.closers, client.Close)
	} else {
		c.activityLog = activitylog.NewMemoryLog(config.ActivityCapacity)
	}

	return c, nil
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) recorder() commands.Recorder {
	return commands.NewRecorder(c.activityLog, c.notifier, c.metrics, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) buybackUoWFactory() commands.BuybackUoWFactory {
	return FuncBuybackUoWFactory(func() commands.BuybackUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) resaleUoWFactory() commands.ResaleUoWFactory {
	return FuncResaleUoWFactory(func() commands.ResaleUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(),
		services.NewOrderSplitter(c.shipping), c.recorder())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateSubmitBuybackCommandHandler() commands.SubmitBuybackCommandHandler {
	return commands.NewSubmitBuybackCommandHandler(c.buybackUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateApproveBuybackCommandHandler() commands.ApproveBuybackCommandHandler {
	return commands.NewApproveBuybackCommandHandler(c.buybackUoWFactory(), c.config.DefaultBuybackStock, c.recorder())
}

func (c *CompositionRoot) CreateRejectBuybackCommandHandler() commands.RejectBuybackCommandHandler {
	return commands.NewRejectBuybackCommandHandler(c.buybackUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateAddToCartCommandHandler() commands.AddToCartCommandHandler {
	return commands.NewAddToCartCommandHandler(c.resaleUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.resaleUoWFactory(),
		services.NewStockAllocator(), c.shipping, c.recorder())
}

func (c *CompositionRoot) CreateTransitionBuybackOrderCommandHandler() commands.TransitionBuybackOrderCommandHandler {
	return commands.NewTransitionBuybackOrderCommandHandler(c.resaleUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateRequestReturnCommandHandler() commands.RequestReturnCommandHandler {
	return commands.NewRequestReturnCommandHandler(c.returnUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateDecideReturnCommandHandler() commands.DecideReturnCommandHandler {
	return commands.NewDecideReturnCommandHandler(c.returnUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	return commands.NewProcessRefundCommandHandler(c.returnUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateCompleteReturnCommandHandler() commands.CompleteReturnCommandHandler {
	return commands.NewCompleteReturnCommandHandler(c.returnUoWFactory(), c.recorder())
}

func (c *CompositionRoot) CreateAutoCompleteReturnsCommandHandler() *commands.AutoCompleteReturnsCommandHandler {
	handler := commands.NewAutoCompleteReturnsCommandHandler(c.returnUoWFactory(), c.config.ReturnGracePeriod, c.recorder())
	return &handler
}

// CreateServer builds the HTTP server with every use case and its read models.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:      c.CreatePlaceOrderCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		ListOrders:      queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:        queries.NewGetOrderQueryHandler(c.gormDB),

		QuoteBuyback:        queries.NewQuoteBuybackQueryHandler(),
		SubmitBuyback:       c.CreateSubmitBuybackCommandHandler(),
		ApproveBuyback:      c.CreateApproveBuybackCommandHandler(),
		RejectBuyback:       c.CreateRejectBuybackCommandHandler(),
		ListBuybackRequests: queries.NewListBuybackRequestsQueryHandler(c.gormDB),

		ListInventory:          queries.NewListInventoryQueryHandler(c.gormDB),
		AddToCart:              c.CreateAddToCartCommandHandler(),
		Checkout:               c.CreateCheckoutCommandHandler(),
		TransitionBuybackOrder: c.CreateTransitionBuybackOrderCommandHandler(),
		ListBuybackOrders:      queries.NewListBuybackOrdersQueryHandler(c.gormDB),

		RequestReturn:  c.CreateRequestReturnCommandHandler(),
		DecideReturn:   c.CreateDecideReturnCommandHandler(),
		ProcessRefund:  c.CreateProcessRefundCommandHandler(),
		CompleteReturn: c.CreateCompleteReturnCommandHandler(),
		ListReturns:    queries.NewListReturnsQueryHandler(c.gormDB),

		RecentActivity: queries.NewRecentActivityQueryHandler(c.activityLog),
	}, c.metrics, c.logger)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewReturnCompletionJob(c.CreateAutoCompleteReturnsCommandHandler(),
			c.config.ReturnCompletionSchedule, c.metrics, c.logger),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBuybackUoWFactory func() commands.BuybackUoW

func (f FuncBuybackUoWFactory) Create() commands.BuybackUoW {
	return f()
}

type FuncResaleUoWFactory func() commands.ResaleUoW

func (f FuncResaleUoWFactory) Create() commands.ResaleUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}
