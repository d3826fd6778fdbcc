package cmd

import (
	"log/slog"

	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires infrastructure adapters into application
// handlers. Each Create method builds a fresh handler over the shared
// database handle and adapters.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	blobStorage ports.BlobStorage
	notifier    ports.NotificationSender
	logger      *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	blobStorage ports.BlobStorage,
	notifier ports.NotificationSender,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		blobStorage: blobStorage,
		notifier:    notifier,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	policy := commands.CompletionPolicy{
		EmailEnabled:      c.config.EnablePodEmail,
		AtomicCompletion:  c.config.AtomicCompletion,
		StrictStatusGuard: c.config.StrictStatusGuard,
	}
	return commands.NewCompleteDeliveryCommandHandler(f, c.blobStorage, c.notifier, policy, c.logger)
}

func (c *CompositionRoot) CreateFailDeliveryCommandHandler() commands.FailDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailDeliveryCommandHandler(f, c.config.StrictStatusGuard, c.logger)
}

func (c *CompositionRoot) CreateRecordArrivalCommandHandler() commands.RecordArrivalCommandHandler {
	var f commands.StopEventUoWFactory = FuncStopEventUoWFactory(func() commands.StopEventUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordArrivalCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordDriverPositionCommandHandler() commands.RecordDriverPositionCommandHandler {
	var f commands.PositionUoWFactory = FuncPositionUoWFactory(func() commands.PositionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDriverPositionCommandHandler(f)
}

func (c *CompositionRoot) CreateRecountRouteProgressCommandHandler() commands.RecountRouteProgressCommandHandler {
	var f commands.RouteProgressUoWFactory = FuncRouteProgressUoWFactory(func() commands.RouteProgressUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecountRouteProgressCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDispatchSnapshotQueryHandler() queries.GetDispatchSnapshotQueryHandler {
	return queries.NewGetDispatchSnapshotQueryHandler(c.gormDB, c.config.EnableDispatchMap, c.logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncStopEventUoWFactory func() commands.StopEventUoW

func (f FuncStopEventUoWFactory) Create() commands.StopEventUoW {
	return f()
}

type FuncPositionUoWFactory func() commands.PositionUoW

func (f FuncPositionUoWFactory) Create() commands.PositionUoW {
	return f()
}

type FuncRouteProgressUoWFactory func() commands.RouteProgressUoW

func (f FuncRouteProgressUoWFactory) Create() commands.RouteProgressUoW {
	return f()
}
