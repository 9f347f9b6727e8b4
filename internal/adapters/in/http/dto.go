package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

// ItemRequest is one order line in a create-order request.
type ItemRequest struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	BuyerID             string        `json:"buyerId"`
	SellerID            string        `json:"sellerId"`
	Items               []ItemRequest `json:"items"`
	ShippingAddress     string        `json:"shippingAddress"`
	PaymentMethod       string        `json:"paymentMethod"`
	EstimatedDeliveryAt *time.Time    `json:"estimatedDeliveryAt,omitempty"`
}

// TransitionStatusRequest is the body of POST /api/v1/orders/:id/status.
type TransitionStatusRequest struct {
	Status    string `json:"status"`
	ActorRole string `json:"actorRole"`
	ActorID   string `json:"actorId"`
	Notes     string `json:"notes,omitempty"`
}

// AssignAgentRequest is the body of POST /api/v1/orders/:id/assign.
type AssignAgentRequest struct {
	AgentID string `json:"agentId"`
	AdminID string `json:"adminId"`
	Notes   string `json:"notes,omitempty"`
}

// BulkAssignRequest is the body of POST /api/v1/orders/assign.
type BulkAssignRequest struct {
	OrderIDs []string `json:"orderIds"`
	AgentID  string   `json:"agentId"`
	AdminID  string   `json:"adminId"`
	Notes    string   `json:"notes,omitempty"`
}

// AgentResponseRequest is the body of POST /api/v1/orders/:id/agent-response.
type AgentResponseRequest struct {
	AgentID  string `json:"agentId"`
	Response string `json:"response"`
	Reason   string `json:"reason,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	ActorRole string `json:"actorRole"`
	ActorID   string `json:"actorId"`
	Reason    string `json:"reason"`
}

// ApproveOrderRequest is the body of POST /api/v1/orders/:id/approve.
type ApproveOrderRequest struct {
	AdminID  string `json:"adminId"`
	Decision string `json:"decision"`
}

// AgentArrivalRequest is the body of POST /api/v1/orders/:id/arrival.
type AgentArrivalRequest struct {
	AgentID string `json:"agentId"`
}

// CreateAgentRequest is the body of POST /api/v1/agents.
type CreateAgentRequest struct {
	Name string `json:"name"`
}

// AgentView is the representation of a delivery agent returned to clients.
type AgentView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	Status   string `json:"status"`
}

// OrderView is the representation of an order returned after a command.
type OrderView struct {
	ID               string     `json:"id"`
	OrderNumber      string     `json:"orderNumber"`
	BuyerID          string     `json:"buyerId"`
	SellerID         string     `json:"sellerId"`
	Status           string     `json:"status"`
	ApprovalStatus   string     `json:"approvalStatus"`
	AssignmentStatus string     `json:"assignmentStatus"`
	AgentID          *string    `json:"agentId,omitempty"`
	HistoryLength    int        `json:"historyLength"`
	CreatedAt        time.Time  `json:"createdAt"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
}

// BulkAssignFailureView is one skipped order in a bulk assignment response.
type BulkAssignFailureView struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// BulkAssignResponse is the body returned by POST /api/v1/orders/assign.
type BulkAssignResponse struct {
	Assigned []string                `json:"assigned"`
	Failed   []BulkAssignFailureView `json:"failed"`
}

// OrderLookupView is the body returned by GET /api/v1/orders/:number.
type OrderLookupView struct {
	ID                  string     `json:"id"`
	OrderNumber         string     `json:"orderNumber"`
	BuyerID             string     `json:"buyerId"`
	SellerID            string     `json:"sellerId"`
	Status              string     `json:"status"`
	ApprovalStatus      string     `json:"approvalStatus"`
	AutoApprovalAt      time.Time  `json:"autoApprovalAt"`
	AssignmentStatus    string     `json:"assignmentStatus"`
	AgentID             *string    `json:"agentId,omitempty"`
	IsPaid              bool       `json:"isPaid"`
	PaymentStatus       string     `json:"paymentStatus"`
	CreatedAt           time.Time  `json:"createdAt"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt,omitempty"`
	DeliveredAt         *time.Time `json:"deliveredAt,omitempty"`
}

// AssignableOrderView is one entry of GET /api/v1/orders/assignable.
type AssignableOrderView struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	SellerID       string    `json:"sellerId"`
	Status         string    `json:"status"`
	ApprovalStatus string    `json:"approvalStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}

func orderViewFrom(o *order.Order) OrderView {
	view := OrderView{
		ID:               o.ID().String(),
		OrderNumber:      o.OrderNumber(),
		BuyerID:          o.BuyerID().String(),
		SellerID:         o.SellerID().String(),
		Status:           o.Status().String(),
		ApprovalStatus:   o.Approval().Status().String(),
		AssignmentStatus: o.Assignment().Status().String(),
		HistoryLength:    len(o.History()),
		CreatedAt:        o.CreatedAt(),
		DeliveredAt:      o.DeliveredAt(),
	}
	if agentID := o.Assignment().AgentID(); agentID != nil {
		s := agentID.String()
		view.AgentID = &s
	}
	return view
}

func bulkAssignResponseFrom(result commands.BulkAssignResult) BulkAssignResponse {
	resp := BulkAssignResponse{
		Assigned: make([]string, 0, len(result.Assigned)),
		Failed:   make([]BulkAssignFailureView, 0, len(result.Failed)),
	}
	for _, id := range result.Assigned {
		resp.Assigned = append(resp.Assigned, id.String())
	}
	for _, failure := range result.Failed {
		resp.Failed = append(resp.Failed, BulkAssignFailureView{
			OrderID: failure.OrderID.String(),
			Reason:  failure.Reason,
		})
	}
	return resp
}

func orderLookupViewFrom(view queries.GetOrderByNumberQueryResponse) OrderLookupView {
	lookup := OrderLookupView{
		ID:                  view.ID.String(),
		OrderNumber:         view.OrderNumber,
		BuyerID:             view.BuyerID.String(),
		SellerID:            view.SellerID.String(),
		Status:              view.Status,
		ApprovalStatus:      view.ApprovalStatus,
		AutoApprovalAt:      view.AutoApprovalAt,
		AssignmentStatus:    view.AssignmentStatus,
		IsPaid:              view.IsPaid,
		PaymentStatus:       view.PaymentStatus,
		CreatedAt:           view.CreatedAt,
		EstimatedDeliveryAt: view.EstimatedDeliveryAt,
		DeliveredAt:         view.DeliveredAt,
	}
	if view.AgentID != nil {
		s := view.AgentID.String()
		lookup.AgentID = &s
	}
	return lookup
}
