// Package http exposes the tracking application over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"
	"time"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/application/usecases/queries"
	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server routes REST requests to the command and query handlers.
type Server struct {
	// Command handlers
	createSerialHandler      commands.CreateSerialCommandHandler
	createSerialBatchHandler commands.CreateSerialBatchCommandHandler
	startOperationHandler    commands.StartOperationCommandHandler
	approveOperationHandler  commands.ApproveOperationCommandHandler
	rejectOperationHandler   commands.RejectOperationCommandHandler
	releaseOperationHandler  commands.ReleaseOperationCommandHandler
	reassignOperationHandler commands.ReassignOperationCommandHandler
	assignDefectHandler      commands.AssignDefectCommandHandler
	resolveDefectHandler     commands.ResolveDefectCommandHandler

	// Query handlers
	getSerialHistoryHandler queries.GetSerialHistoryQueryHandler
	getPendingWorkHandler   queries.GetPendingWorkQueryHandler
	getYieldStatsHandler    queries.GetYieldStatsQueryHandler
	getDefectSummaryHandler queries.GetDefectSummaryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createSerialHandler commands.CreateSerialCommandHandler,
	createSerialBatchHandler commands.CreateSerialBatchCommandHandler,
	startOperationHandler commands.StartOperationCommandHandler,
	approveOperationHandler commands.ApproveOperationCommandHandler,
	rejectOperationHandler commands.RejectOperationCommandHandler,
	releaseOperationHandler commands.ReleaseOperationCommandHandler,
	reassignOperationHandler commands.ReassignOperationCommandHandler,
	assignDefectHandler commands.AssignDefectCommandHandler,
	resolveDefectHandler commands.ResolveDefectCommandHandler,
	getSerialHistoryHandler queries.GetSerialHistoryQueryHandler,
	getPendingWorkHandler queries.GetPendingWorkQueryHandler,
	getYieldStatsHandler queries.GetYieldStatsQueryHandler,
	getDefectSummaryHandler queries.GetDefectSummaryQueryHandler,
) *Server {
	return &Server{
		createSerialHandler:      createSerialHandler,
		createSerialBatchHandler: createSerialBatchHandler,
		startOperationHandler:    startOperationHandler,
		approveOperationHandler:  approveOperationHandler,
		rejectOperationHandler:   rejectOperationHandler,
		releaseOperationHandler:  releaseOperationHandler,
		reassignOperationHandler: reassignOperationHandler,
		assignDefectHandler:      assignDefectHandler,
		resolveDefectHandler:     resolveDefectHandler,
		getSerialHistoryHandler:  getSerialHistoryHandler,
		getPendingWorkHandler:    getPendingWorkHandler,
		getYieldStatsHandler:     getYieldStatsHandler,
		getDefectSummaryHandler:  getDefectSummaryHandler,
	}
}

// RegisterRoutes mounts the REST API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/serials", s.CreateSerial)
	api.POST("/serials/batch", s.CreateSerialBatch)

	api.POST("/serials/:code/operations/:operationID/start", s.StartOperation)
	api.POST("/serials/:code/operations/:operationID/approve", s.ApproveOperation)
	api.POST("/serials/:code/operations/:operationID/reject", s.RejectOperation)
	api.POST("/serials/:code/operations/:operationID/release", s.ReleaseOperation)
	api.POST("/serials/:code/operations/:operationID/reassign", s.ReassignOperation)

	api.POST("/defects/:id/assign", s.AssignDefect)
	api.POST("/defects/:id/resolve", s.ResolveDefect)

	api.GET("/serials/:code/history", s.GetSerialHistory)
	api.GET("/work/pending", s.GetPendingWork)
	api.GET("/stats/yield", s.GetYieldStats)
	api.GET("/defects/summary", s.GetDefectSummary)
}

// CreateSerial handles POST /api/v1/serials - registers one unit and
// allocates its code.
func (s *Server) CreateSerial(ctx echo.Context) error {
	var req CreateSerialRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid created_by: "+err.Error())
	}

	cmd, err := commands.NewCreateSerialCommand(kernel.NewUUID(), req.OrderNumber, req.PartNumber, createdBy)
	if err != nil {
		return badRequest(ctx, "Invalid serial data: "+err.Error())
	}

	code, err := s.createSerialHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateSerialResponse{SerialCode: code.String()})
}

// CreateSerialBatch handles POST /api/v1/serials/batch - registers up to 100
// units with consecutive codes, all or nothing.
func (s *Server) CreateSerialBatch(ctx echo.Context) error {
	var req CreateSerialBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid created_by: "+err.Error())
	}

	cmd, err := commands.NewCreateSerialBatchCommand(req.OrderNumber, req.PartNumber, createdBy, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid batch data: "+err.Error())
	}

	codes, err := s.createSerialBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err)
	}

	response := CreateSerialBatchResponse{SerialCodes: make([]string, len(codes))}
	for i, code := range codes {
		response.SerialCodes[i] = code.String()
	}

	return ctx.JSON(http.StatusCreated, response)
}

// StartOperation handles POST /api/v1/serials/:code/operations/:operationID/start.
func (s *Server) StartOperation(ctx echo.Context) error {
	code, operationID, actorID, role, _, err := bindOperationAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartOperationCommand(code, operationID, actorID, role)
	if err != nil {
		return badRequest(ctx, "Invalid start data: "+err.Error())
	}

	if err := s.startOperationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApproveOperation handles POST /api/v1/serials/:code/operations/:operationID/approve.
func (s *Server) ApproveOperation(ctx echo.Context) error {
	code, operationID, actorID, role, req, err := bindOperationAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewApproveOperationCommand(code, operationID, actorID, role, req.QualityPassed, req.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid approval data: "+err.Error())
	}

	if err := s.approveOperationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOperation handles POST /api/v1/serials/:code/operations/:operationID/reject.
func (s *Server) RejectOperation(ctx echo.Context) error {
	code, operationID, actorID, role, req, err := bindOperationAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRejectOperationCommand(code, operationID, actorID, role, req.Reason, req.DefectType)
	if err != nil {
		return badRequest(ctx, "Invalid rejection data: "+err.Error())
	}

	if err := s.rejectOperationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOperation handles POST /api/v1/serials/:code/operations/:operationID/release.
func (s *Server) ReleaseOperation(ctx echo.Context) error {
	code, operationID, actorID, role, _, err := bindOperationAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReleaseOperationCommand(code, operationID, actorID, role)
	if err != nil {
		return badRequest(ctx, "Invalid release data: "+err.Error())
	}

	if err := s.releaseOperationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignOperation handles POST /api/v1/serials/:code/operations/:operationID/reassign.
// An empty new_actor_id releases the claim back to pending.
func (s *Server) ReassignOperation(ctx echo.Context) error {
	code, err := serial.ParseCode(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, "Invalid serial code: "+err.Error())
	}

	operationID, err := kernel.UUIDFromString(ctx.Param("operationID"))
	if err != nil {
		return badRequest(ctx, "Invalid operation id: "+err.Error())
	}

	var req ReassignOperationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requestedBy, err := kernel.UUIDFromString(req.RequestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid requested_by: "+err.Error())
	}

	role, err := actor.RoleFromString(req.RequestedRole)
	if err != nil {
		return badRequest(ctx, "Invalid requested_role: "+err.Error())
	}

	var newActorID kernel.UUID
	if req.NewActorID != "" {
		newActorID, err = kernel.UUIDFromString(req.NewActorID)
		if err != nil {
			return badRequest(ctx, "Invalid new_actor_id: "+err.Error())
		}
	}

	cmd, err := commands.NewReassignOperationCommand(code, operationID, requestedBy, role, newActorID)
	if err != nil {
		return badRequest(ctx, "Invalid reassignment data: "+err.Error())
	}

	if err := s.reassignOperationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDefect handles POST /api/v1/defects/:id/assign.
func (s *Server) AssignDefect(ctx echo.Context) error {
	defectID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid defect id: "+err.Error())
	}

	var req AssignDefectRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	repairerID, err := kernel.UUIDFromString(req.RepairerID)
	if err != nil {
		return badRequest(ctx, "Invalid repairer_id: "+err.Error())
	}

	role, err := actor.RoleFromString(req.RepairerRole)
	if err != nil {
		return badRequest(ctx, "Invalid repairer_role: "+err.Error())
	}

	cmd, err := commands.NewAssignDefectCommand(defectID, repairerID, role)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if err := s.assignDefectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveDefect handles POST /api/v1/defects/:id/resolve.
func (s *Server) ResolveDefect(ctx echo.Context) error {
	defectID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid defect id: "+err.Error())
	}

	var req ResolveDefectRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	resolverID, err := kernel.UUIDFromString(req.ResolverID)
	if err != nil {
		return badRequest(ctx, "Invalid resolver_id: "+err.Error())
	}

	role, err := actor.RoleFromString(req.ResolverRole)
	if err != nil {
		return badRequest(ctx, "Invalid resolver_role: "+err.Error())
	}

	var cmd commands.ResolveDefectCommand
	switch req.Action {
	case "repair":
		returnTo, parseErr := kernel.UUIDFromString(req.ReturnToOperationID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid return_to_operation_id: "+parseErr.Error())
		}
		cmd, err = commands.NewResolveDefectRepairCommand(defectID, resolverID, role, returnTo, req.Notes)
	case "scrap":
		cmd, err = commands.NewResolveDefectScrapCommand(defectID, resolverID, role, req.Notes)
	default:
		return badRequest(ctx, `Invalid action: expected "repair" or "scrap"`)
	}
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	if err := s.resolveDefectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSerialHistory handles GET /api/v1/serials/:code/history.
func (s *Server) GetSerialHistory(ctx echo.Context) error {
	code, err := serial.ParseCode(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, "Invalid serial code: "+err.Error())
	}

	query, err := queries.NewGetSerialHistoryQuery(code)
	if err != nil {
		return badRequest(ctx, "Invalid history query: "+err.Error())
	}

	history, err := s.getSerialHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err)
	}

	response := SerialHistoryResponse{
		SerialCode:  history.SerialCode,
		OrderNumber: history.OrderNumber,
		Status:      history.Status,
		CreatedAt:   history.CreatedAt,
		CompletedAt: history.CompletedAt,
		Records:     make([]SerialHistoryRecord, len(history.Records)),
	}
	for i, record := range history.Records {
		response.Records[i] = SerialHistoryRecord{
			OperationID:     record.OperationID,
			OperationName:   record.OperationName,
			Sequence:        record.Sequence,
			Status:          record.Status,
			AssignedTo:      record.AssignedTo,
			ProcessedBy:     record.ProcessedBy,
			StartedAt:       record.StartedAt,
			CompletedAt:     record.CompletedAt,
			Notes:           record.Notes,
			QualityPassed:   record.QualityPassed,
			RejectionReason: record.RejectionReason,
			Superseded:      record.Superseded,
			CreatedAt:       record.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingWork handles GET /api/v1/work/pending.
func (s *Server) GetPendingWork(ctx echo.Context) error {
	items, err := s.getPendingWorkHandler.Handle(ctx.Request().Context(), queries.NewGetPendingWorkQuery())
	if err != nil {
		return failure(ctx, err)
	}

	response := make([]PendingWorkItem, len(items))
	for i, item := range items {
		response[i] = PendingWorkItem{
			SerialCode:    item.SerialCode,
			OrderNumber:   item.OrderNumber,
			OperationID:   item.OperationID,
			OperationName: item.OperationName,
			Sequence:      item.Sequence,
			WaitingSince:  item.WaitingSince,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetYieldStats handles GET /api/v1/stats/yield?from=...&to=... with RFC 3339
// period bounds.
func (s *Server) GetYieldStats(ctx echo.Context) error {
	from, err := time.Parse(time.RFC3339, ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "Invalid from: "+err.Error())
	}

	to, err := time.Parse(time.RFC3339, ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "Invalid to: "+err.Error())
	}

	query, err := queries.NewGetYieldStatsQuery(from, to)
	if err != nil {
		return badRequest(ctx, "Invalid period: "+err.Error())
	}

	stats, err := s.getYieldStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, YieldStatsResponse{
		TotalSerials:      stats.TotalSerials,
		CountsByStatus:    stats.CountsByStatus,
		CompletedInPeriod: stats.CompletedInPeriod,
		FirstPassInPeriod: stats.FirstPassInPeriod,
		FirstPassYield:    stats.FirstPassYield,
	})
}

// GetDefectSummary handles GET /api/v1/defects/summary.
func (s *Server) GetDefectSummary(ctx echo.Context) error {
	summary, err := s.getDefectSummaryHandler.Handle(ctx.Request().Context(), queries.NewGetDefectSummaryQuery())
	if err != nil {
		return failure(ctx, err)
	}

	response := DefectSummaryResponse{
		CountsByStatus: summary.CountsByStatus,
		CountsByType:   summary.CountsByType,
		Recent:         make([]DefectSummaryEntry, len(summary.Recent)),
	}
	for i, entry := range summary.Recent {
		response.Recent[i] = DefectSummaryEntry{
			DefectID:    entry.DefectID,
			SerialCode:  entry.SerialCode,
			DefectType:  entry.DefectType,
			Status:      entry.Status,
			Description: entry.Description,
			ReportedAt:  entry.ReportedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// bindOperationAction extracts the path and body parts shared by the
// start/approve/reject/release endpoints.
func bindOperationAction(ctx echo.Context) (serial.Code, kernel.UUID, kernel.UUID, actor.Role, OperationActionRequest, error) {
	var req OperationActionRequest

	code, err := serial.ParseCode(ctx.Param("code"))
	if err != nil {
		return serial.Code{}, kernel.UUID{}, kernel.UUID{}, actor.RoleUnknown, req, errors.New("invalid serial code: " + err.Error())
	}

	operationID, err := kernel.UUIDFromString(ctx.Param("operationID"))
	if err != nil {
		return serial.Code{}, kernel.UUID{}, kernel.UUID{}, actor.RoleUnknown, req, errors.New("invalid operation id: " + err.Error())
	}

	if err := ctx.Bind(&req); err != nil {
		return serial.Code{}, kernel.UUID{}, kernel.UUID{}, actor.RoleUnknown, req, errors.New("invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return serial.Code{}, kernel.UUID{}, kernel.UUID{}, actor.RoleUnknown, req, errors.New("invalid actor_id: " + err.Error())
	}

	role, err := actor.RoleFromString(req.ActorRole)
	if err != nil {
		return serial.Code{}, kernel.UUID{}, kernel.UUID{}, actor.RoleUnknown, req, errors.New("invalid actor_role: " + err.Error())
	}

	return code, operationID, actorID, role, req, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// failure maps handler errors onto HTTP statuses: missing objects are 404,
// process rule violations are 409, invalid input is 400, the rest is 500.
func failure(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serial.ErrInvalidTransition),
		errors.Is(err, serial.ErrSequenceViolation),
		errors.Is(err, serial.ErrActorBusy),
		errors.Is(err, serial.ErrNotOwner),
		errors.Is(err, serial.ErrAllocationExhausted),
		errors.Is(err, actor.ErrNotPermitted):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, serial.ErrInvalidCodeFormat):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
