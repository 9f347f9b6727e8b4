// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between the domain model and the relational
// representation. Order lines and the status history are stored as JSON
// documents; everything the assignment flow and the sweep filter on lives in
// indexed scalar columns.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column backs the optimistic concurrency check in Update.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"uniqueIndex;not null"`
	BuyerID         uuid.UUID `gorm:"type:uuid;index"`
	SellerID        uuid.UUID `gorm:"type:uuid;index"`
	Items           []ItemDTO `gorm:"serializer:json;type:jsonb"`
	ShippingAddress string
	PaymentMethod   string

	Status  string            `gorm:"index"`
	History []HistoryEntryDTO `gorm:"serializer:json;type:jsonb"`

	ApprovalStatus string     `gorm:"index"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time
	AutoApprovalAt time.Time `gorm:"index"`

	AssignmentStatus string     `gorm:"index"`
	AgentID          *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt       *time.Time
	AssignedBy       *uuid.UUID `gorm:"type:uuid"`
	AcceptedAt       *time.Time
	RejectedAt       *time.Time
	RejectionReason  string
	ReachedBuyerAt   *time.Time

	CancelledByRole    string
	CancelledByID      *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time
	CancellationReason string

	IsPaid        bool
	PaymentStatus string

	CreatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time

	Version int64 `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the items JSON document.
type ItemDTO struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
}

// HistoryEntryDTO is one status history record inside the history JSON document.
type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	ActorRole string    `json:"actorRole"`
	ActorID   string    `json:"actorId"`
	At        time.Time `json:"at"`
	Notes     string    `json:"notes,omitempty"`
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemDTO{
			ProductID:  it.ProductID().String(),
			Quantity:   it.Quantity(),
			PriceCents: it.PriceCents(),
			Size:       it.Size(),
			Color:      it.Color(),
		})
	}

	history := make([]HistoryEntryDTO, 0, len(o.History()))
	for _, h := range o.History() {
		history = append(history, HistoryEntryDTO{
			Status:    h.Status().String(),
			ActorRole: h.Actor().Role().String(),
			ActorID:   h.Actor().ID().String(),
			At:        h.At(),
			Notes:     h.Notes(),
		})
	}

	assignment := o.Assignment()
	approval := o.Approval()

	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		OrderNumber:     o.OrderNumber(),
		BuyerID:         o.BuyerID().Bytes(),
		SellerID:        o.SellerID().Bytes(),
		Items:           items,
		ShippingAddress: o.ShippingAddress(),
		PaymentMethod:   o.PaymentMethod(),
		Status:          o.Status().String(),
		History:         history,

		ApprovalStatus: approval.Status().String(),
		ApprovedBy:     uuidPtr(approval.ApprovedBy()),
		ApprovedAt:     approval.ApprovedAt(),
		AutoApprovalAt: approval.AutoApprovalAt(),

		AssignmentStatus: assignment.Status().String(),
		AgentID:          uuidPtr(assignment.AgentID()),
		AssignedAt:       assignment.AssignedAt(),
		AssignedBy:       uuidPtr(assignment.AssignedBy()),
		AcceptedAt:       assignment.AcceptedAt(),
		RejectedAt:       assignment.RejectedAt(),
		RejectionReason:  assignment.RejectionReason(),
		ReachedBuyerAt:   assignment.ReachedBuyerAt(),

		IsPaid:        o.IsPaid(),
		PaymentStatus: string(o.PaymentStatus()),

		CreatedAt:           o.CreatedAt(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		DeliveredAt:         o.DeliveredAt(),

		Version: o.Version(),
	}

	if c := o.Cancellation(); c != nil {
		raw := c.By().ID().Bytes()
		at := c.At()
		dto.CancelledByRole = c.By().Role().String()
		dto.CancelledByID = &raw
		dto.CancelledAt = &at
		dto.CancellationReason = c.Reason()
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	approvalStatus, err := order.ApprovalStatusFromString(dto.ApprovalStatus)
	if err != nil {
		return nil, err
	}
	approvedBy, err := kernelUUIDPtr(dto.ApprovedBy)
	if err != nil {
		return nil, err
	}
	approval, err := order.RestoreApproval(approvalStatus, approvedBy, dto.ApprovedAt, dto.AutoApprovalAt)
	if err != nil {
		return nil, err
	}

	assignmentStatus, err := order.AssignmentStatusFromString(dto.AssignmentStatus)
	if err != nil {
		return nil, err
	}
	agentID, err := kernelUUIDPtr(dto.AgentID)
	if err != nil {
		return nil, err
	}
	assignedBy, err := kernelUUIDPtr(dto.AssignedBy)
	if err != nil {
		return nil, err
	}
	assignment, err := order.RestoreAssignment(
		agentID, assignmentStatus,
		dto.AssignedAt, assignedBy,
		dto.AcceptedAt, dto.RejectedAt, dto.RejectionReason,
		dto.ReachedBuyerAt,
	)
	if err != nil {
		return nil, err
	}

	cancellation, err := cancellationToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		OrderNumber:         dto.OrderNumber,
		BuyerID:             buyerID,
		SellerID:            sellerID,
		Items:               items,
		ShippingAddress:     dto.ShippingAddress,
		PaymentMethod:       dto.PaymentMethod,
		Status:              status,
		History:             history,
		Assignment:          assignment,
		Approval:            approval,
		Cancellation:        cancellation,
		IsPaid:              dto.IsPaid,
		PaymentStatus:       order.PaymentStatus(dto.PaymentStatus),
		CreatedAt:           dto.CreatedAt,
		EstimatedDeliveryAt: dto.EstimatedDeliveryAt,
		DeliveredAt:         dto.DeliveredAt,
		Version:             dto.Version,
	})
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromString(dto.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(productID, dto.Quantity, dto.PriceCents, dto.Size, dto.Color)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func historyToDomain(dtos []HistoryEntryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		actor, err := actorFromStrings(dto.ActorRole, dto.ActorID)
		if err != nil {
			return nil, err
		}
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		history = append(history, order.RestoreHistoryEntry(status, actor, dto.At, dto.Notes))
	}
	return history, nil
}

func cancellationToDomain(dto OrderDTO) (*order.Cancellation, error) {
	if dto.CancelledAt == nil || dto.CancelledByID == nil {
		return nil, nil
	}
	actor, err := actorFromStrings(dto.CancelledByRole, dto.CancelledByID.String())
	if err != nil {
		return nil, err
	}
	cancellation := order.RestoreCancellation(actor, *dto.CancelledAt, dto.CancellationReason)
	return &cancellation, nil
}

func actorFromStrings(role, id string) (kernel.Actor, error) {
	r, err := kernel.RoleFromString(role)
	if err != nil {
		return kernel.Actor{}, err
	}
	actorID, err := kernel.UUIDFromString(id)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(r, actorID)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
