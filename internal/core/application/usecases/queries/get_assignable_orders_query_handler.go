package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetAssignableOrdersQueryHandler lists approved, unassigned, non-terminal
// orders straight from the orders table, oldest first.
//
// Example:
//
//	handler := NewGetAssignableOrdersQueryHandler(db)
//	query := NewGetAssignableOrdersQuery()
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to list assignable orders: %v", err)
//	    return err
//	}
type GetAssignableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignableOrdersQueryHandler creates a handler over the given
// connection.
func NewGetAssignableOrdersQueryHandler(db *gorm.DB) GetAssignableOrdersQueryHandler {
	return GetAssignableOrdersQueryHandler{db: db}
}

// Handle returns the dispatch queue sorted by creation time.
func (h GetAssignableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignableOrdersQuery,
) ([]GetAssignableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAssignableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			seller_id,
			status,
			approval_status,
			created_at
		FROM orders
		WHERE approval_status IN (?, ?)
		  AND assignment_status = ?
		  AND status NOT IN (?, ?)
		ORDER BY created_at
	`,
		order.ApprovalApproved.String(),
		order.ApprovalAutoApproved.String(),
		order.AssignmentUnassigned.String(),
		order.Delivered.String(),
		order.Cancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, sellerID                        uuid.UUID
			orderNumber, status, approvalStatus string
			createdAt                           time.Time
		)
		if err = rows.Scan(&id, &orderNumber, &sellerID, &status, &approvalStatus, &createdAt); err != nil {
			return nil, err
		}

		resp := GetAssignableOrdersQueryResponse{
			OrderNumber:    orderNumber,
			Status:         status,
			ApprovalStatus: approvalStatus,
			CreatedAt:      createdAt,
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
