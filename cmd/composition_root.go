package cmd

import (
	"mestrack/internal/adapters/out/postgres"
	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/application/usecases/queries"
	"mestrack/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.Notifier) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
	}
}

func (c *CompositionRoot) serialUoWFactory() commands.SerialUoWFactory {
	return FuncSerialUoWFactory(func() commands.SerialUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) defectUoWFactory() commands.DefectUoWFactory {
	return FuncDefectUoWFactory(func() commands.DefectUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateSerialCommandHandler() commands.CreateSerialCommandHandler {
	return commands.NewCreateSerialCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateSerialBatchCommandHandler() commands.CreateSerialBatchCommandHandler {
	return commands.NewCreateSerialBatchCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateStartOperationCommandHandler() commands.StartOperationCommandHandler {
	return commands.NewStartOperationCommandHandler(c.serialUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateApproveOperationCommandHandler() commands.ApproveOperationCommandHandler {
	return commands.NewApproveOperationCommandHandler(c.serialUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRejectOperationCommandHandler() commands.RejectOperationCommandHandler {
	return commands.NewRejectOperationCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReleaseOperationCommandHandler() commands.ReleaseOperationCommandHandler {
	return commands.NewReleaseOperationCommandHandler(c.serialUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReassignOperationCommandHandler() commands.ReassignOperationCommandHandler {
	return commands.NewReassignOperationCommandHandler(c.serialUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignDefectCommandHandler() commands.AssignDefectCommandHandler {
	return commands.NewAssignDefectCommandHandler(c.defectUoWFactory())
}

func (c *CompositionRoot) CreateResolveDefectCommandHandler() commands.ResolveDefectCommandHandler {
	return commands.NewResolveDefectCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReportStalledClaimsCommandHandler() commands.ReportStalledClaimsCommandHandler {
	return commands.NewReportStalledClaimsCommandHandler(c.serialUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetSerialHistoryQueryHandler() queries.GetSerialHistoryQueryHandler {
	return queries.NewGetSerialHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingWorkQueryHandler() queries.GetPendingWorkQueryHandler {
	return queries.NewGetPendingWorkQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetYieldStatsQueryHandler() queries.GetYieldStatsQueryHandler {
	return queries.NewGetYieldStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDefectSummaryQueryHandler() queries.GetDefectSummaryQueryHandler {
	return queries.NewGetDefectSummaryQueryHandler(c.gormDB)
}

type FuncSerialUoWFactory func() commands.SerialUoW

func (f FuncSerialUoWFactory) Create() commands.SerialUoW {
	return f()
}

type FuncDefectUoWFactory func() commands.DefectUoW

func (f FuncDefectUoWFactory) Create() commands.DefectUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
