package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/collaborators"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/notifications"
)

// CompositionRoot wires the adapters into the use cases. Handlers are built
// on demand; shared infrastructure (DB pool, registry, publisher) is built
// once.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry   *notifications.Registry
	dispatcher *notifications.Dispatcher
	publisher  *kafka.Publisher
	inventory  *collaborators.InventoryClient
	invoices   *collaborators.InvoiceClient

	orderEvents commands.OrderEvents
	config      Config
}

// NewCompositionRoot builds the shared infrastructure from configuration.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	adminIDs := make([]kernel.UUID, 0, len(cfg.AdminIDs))
	for _, raw := range cfg.AdminIDs {
		if id, err := kernel.UUIDFromString(raw); err == nil {
			adminIDs = append(adminIDs, id)
		} else {
			logger.Warn("skipping malformed admin id in config", "value", raw)
		}
	}

	registry := notifications.NewRegistry(postgres.NewMembershipAuthorizer(gormDB, adminIDs))
	dispatcher := notifications.NewDispatcher(registry, logger)
	publisher := kafka.NewPublisher(cfg.KafkaHost, cfg.KafkaOrderEventsTopic)

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      logger,
		registry:    registry,
		dispatcher:  dispatcher,
		publisher:   publisher,
		inventory:   collaborators.NewInventoryClient(cfg.InventoryServiceURL),
		invoices:    collaborators.NewInvoiceClient(cfg.BillingServiceURL),
		orderEvents: commands.NewOrderEvents(dispatcher, publisher, logger),
		config:      cfg,
	}
}

// Registry exposes the notification registry for join/leave endpoints and
// channel wiring.
func (c *CompositionRoot) Registry() *notifications.Registry {
	return c.registry
}

// Close releases long-lived resources.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.inventory, c.orderEvents, c.config.ApprovalWindow)
}

func (c *CompositionRoot) CreateTransitionStatusCommandHandler() commands.TransitionStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionStatusCommandHandler(f, c.inventory, c.invoices, c.orderEvents, c.logger)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignAgentCommandHandler(f, c.orderEvents)
}

func (c *CompositionRoot) CreateBulkAssignCommandHandler() commands.BulkAssignCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkAssignCommandHandler(f, c.orderEvents)
}

func (c *CompositionRoot) CreateAgentResponseCommandHandler() commands.AgentResponseCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAgentResponseCommandHandler(f, c.orderEvents)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.inventory, c.orderEvents, c.logger)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f, c.orderEvents)
}

func (c *CompositionRoot) CreateApprovePendingOrdersCommandHandler() commands.ApprovePendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApprovePendingOrdersCommandHandler(f, c.orderEvents, c.logger)
}

func (c *CompositionRoot) CreateRecordAgentArrivalCommandHandler() commands.RecordAgentArrivalCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordAgentArrivalCommandHandler(f, c.orderEvents)
}

func (c *CompositionRoot) CreateCreateAgentCommandHandler() commands.CreateAgentCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderByNumberQueryHandler() queries.GetOrderByNumberQueryHandler {
	return queries.NewGetOrderByNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignableOrdersQueryHandler() queries.GetAssignableOrdersQueryHandler {
	return queries.NewGetAssignableOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
