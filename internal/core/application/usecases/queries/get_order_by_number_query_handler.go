package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// GetOrderByNumberQueryHandler serves single-order lookups straight from the
// orders table.
//
// Example:
//
//	handler := NewGetOrderByNumberQueryHandler(db)
//	query, _ := NewGetOrderByNumberQuery("ORD-000042")
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.NewHTTPError(http.StatusNotFound)
//	}
type GetOrderByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByNumberQueryHandler creates a handler over the given connection.
func NewGetOrderByNumberQueryHandler(db *gorm.DB) GetOrderByNumberQueryHandler {
	return GetOrderByNumberQueryHandler{db: db}
}

// Handle returns the order view, or errs.ErrObjectNotFound when no order
// carries the number.
func (h GetOrderByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByNumberQuery,
) (GetOrderByNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			buyer_id,
			seller_id,
			status,
			approval_status,
			auto_approval_at,
			assignment_status,
			agent_id,
			is_paid,
			payment_status,
			created_at,
			estimated_delivery_at,
			delivered_at,
			version
		FROM orders
		WHERE order_number = ?
	`, query.OrderNumber()).Row()

	var (
		id, buyerID, sellerID               uuid.UUID
		agentID                             uuid.NullUUID
		orderNumber, status, approvalStatus string
		assignmentStatus, paymentStatus     string
		isPaid                              bool
		autoApprovalAt, createdAt           time.Time
		estimatedDeliveryAt, deliveredAt    sql.NullTime
		version                             int64
	)
	err := row.Scan(
		&id,
		&orderNumber,
		&buyerID,
		&sellerID,
		&status,
		&approvalStatus,
		&autoApprovalAt,
		&assignmentStatus,
		&agentID,
		&isPaid,
		&paymentStatus,
		&createdAt,
		&estimatedDeliveryAt,
		&deliveredAt,
		&version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByNumberQueryResponse{},
			errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
	}
	if err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	resp := GetOrderByNumberQueryResponse{
		OrderNumber:      orderNumber,
		Status:           status,
		ApprovalStatus:   approvalStatus,
		AutoApprovalAt:   autoApprovalAt,
		AssignmentStatus: assignmentStatus,
		IsPaid:           isPaid,
		PaymentStatus:    paymentStatus,
		CreatedAt:        createdAt,
		Version:          version,
	}
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}
	if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}
	if agentID.Valid {
		agent, agentErr := kernel.UUIDFromBytes(agentID.UUID[:])
		if agentErr != nil {
			return GetOrderByNumberQueryResponse{}, agentErr
		}
		resp.AgentID = &agent
	}
	if estimatedDeliveryAt.Valid {
		t := estimatedDeliveryAt.Time
		resp.EstimatedDeliveryAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		resp.DeliveredAt = &t
	}
	return resp, nil
}
