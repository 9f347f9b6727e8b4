// Package http exposes the fulfillment commands and queries over a REST API.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionStatusHandler  commands.TransitionStatusCommandHandler
	assignAgentHandler       commands.AssignAgentCommandHandler
	bulkAssignHandler        commands.BulkAssignCommandHandler
	agentResponseHandler     commands.AgentResponseCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	approveOrderHandler      commands.ApproveOrderCommandHandler
	recordArrivalHandler     commands.RecordAgentArrivalCommandHandler
	createAgentHandler       commands.CreateAgentCommandHandler
	getOrderByNumberHandler  queries.GetOrderByNumberQueryHandler
	getAssignableOrdsHandler queries.GetAssignableOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionStatusHandler commands.TransitionStatusCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	bulkAssignHandler commands.BulkAssignCommandHandler,
	agentResponseHandler commands.AgentResponseCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	recordArrivalHandler commands.RecordAgentArrivalCommandHandler,
	createAgentHandler commands.CreateAgentCommandHandler,
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler,
	getAssignableOrdsHandler queries.GetAssignableOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionStatusHandler:  transitionStatusHandler,
		assignAgentHandler:       assignAgentHandler,
		bulkAssignHandler:        bulkAssignHandler,
		agentResponseHandler:     agentResponseHandler,
		cancelOrderHandler:       cancelOrderHandler,
		approveOrderHandler:      approveOrderHandler,
		recordArrivalHandler:     recordArrivalHandler,
		createAgentHandler:       createAgentHandler,
		getOrderByNumberHandler:  getOrderByNumberHandler,
		getAssignableOrdsHandler: getAssignableOrdsHandler,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/assignable", s.GetAssignableOrders)
	api.GET("/orders/:number", s.GetOrderByNumber)
	api.POST("/orders/assign", s.BulkAssign)
	api.POST("/orders/:id/status", s.TransitionStatus)
	api.POST("/orders/:id/assign", s.AssignAgent)
	api.POST("/orders/:id/agent-response", s.AgentResponse)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/approve", s.ApproveOrder)
	api.POST("/orders/:id/arrival", s.RecordAgentArrival)
	api.POST("/agents", s.CreateAgent)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return badRequest(ctx, "invalid buyerId")
	}
	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "invalid sellerId")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		productID, idErr := kernel.UUIDFromString(line.ProductID)
		if idErr != nil {
			return badRequest(ctx, "invalid productId")
		}
		item, itemErr := order.NewItem(productID, line.Quantity, line.PriceCents, line.Size, line.Color)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		buyerID,
		sellerID,
		items,
		req.ShippingAddress,
		req.PaymentMethod,
		req.EstimatedDeliveryAt,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderViewFrom(created))
}

// TransitionStatus handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req TransitionStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}
	actor, err := actorFrom(req.ActorRole, req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionStatusCommand(orderID, next, actor, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.transitionStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(updated))
}

// AssignAgent handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignAgent(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AssignAgentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}
	adminID, err := kernel.UUIDFromString(req.AdminID)
	if err != nil {
		return badRequest(ctx, "invalid adminId")
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, agentID, adminID, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.assignAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(updated))
}

// BulkAssign handles POST /api/v1/orders/assign.
func (s *Server) BulkAssign(ctx echo.Context) error {
	var req BulkAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}
	adminID, err := kernel.UUIDFromString(req.AdminID)
	if err != nil {
		return badRequest(ctx, "invalid adminId")
	}

	cmd, err := commands.NewBulkAssignCommand(orderIDs, agentID, adminID, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.bulkAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkAssignResponseFrom(result))
}

// AgentResponse handles POST /api/v1/orders/:id/agent-response.
func (s *Server) AgentResponse(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AgentResponseRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}

	cmd, err := commands.NewAgentResponseCommand(orderID, agentID, commands.AgentResponse(req.Response), req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.agentResponseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(updated))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := actorFrom(req.ActorRole, req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(updated))
}

// ApproveOrder handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ApproveOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	adminID, err := kernel.UUIDFromString(req.AdminID)
	if err != nil {
		return badRequest(ctx, "invalid adminId")
	}

	cmd, err := commands.NewApproveOrderCommand(orderID, adminID, commands.ApprovalDecision(req.Decision))
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.approveOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(updated))
}

// RecordAgentArrival handles POST /api/v1/orders/:id/arrival.
func (s *Server) RecordAgentArrival(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AgentArrivalRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "invalid agentId")
	}

	cmd, err := commands.NewRecordAgentArrivalCommand(orderID, agentID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.recordArrivalHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(updated))
}

// CreateAgent handles POST /api/v1/agents.
func (s *Server) CreateAgent(ctx echo.Context) error {
	var req CreateAgentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateAgentCommand(kernel.NewUUID(), req.Name)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AgentView{
		ID:       created.ID().String(),
		Name:     created.Name(),
		IsActive: created.IsActive(),
		Status:   created.Status().String(),
	})
}

// GetOrderByNumber handles GET /api/v1/orders/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getOrderByNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderLookupViewFrom(view))
}

// GetAssignableOrders handles GET /api/v1/orders/assignable.
func (s *Server) GetAssignableOrders(ctx echo.Context) error {
	query := queries.NewGetAssignableOrdersQuery()

	views, err := s.getAssignableOrdsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AssignableOrderView, 0, len(views))
	for _, view := range views {
		response = append(response, AssignableOrderView{
			ID:             view.ID.String(),
			OrderNumber:    view.OrderNumber,
			SellerID:       view.SellerID.String(),
			Status:         view.Status,
			ApprovalStatus: view.ApprovalStatus,
			CreatedAt:      view.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func actorFrom(role, id string) (kernel.Actor, error) {
	parsedRole, err := kernel.RoleFromString(role)
	if err != nil {
		return kernel.Actor{}, err
	}
	actorID, err := kernel.UUIDFromString(id)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("actorId", err)
	}
	return kernel.NewActor(parsedRole, actorID)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func respondError(ctx echo.Context, err error) error {
	code, body := errorResponse(err)
	return ctx.JSON(code, body)
}
