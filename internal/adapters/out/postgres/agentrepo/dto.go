// Package agentrepo provides data transfer objects and mapping functions for
// delivery agent persistence. The agent's active order list is stored as a
// JSON document; availability and liveness live in scalar columns the
// assignment flow filters on.
package agentrepo

import (
	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// AgentDTO represents the database structure for persisting delivery agents.
type AgentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"not null"`
	IsActive       bool       `gorm:"index"`
	Status         string     `gorm:"index"`
	CurrentOrder   *uuid.UUID `gorm:"type:uuid"`
	AssignedOrders []string   `gorm:"serializer:json;type:jsonb"`
	Version        int64      `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "agents".
func (AgentDTO) TableName() string {
	return "agents"
}

func fromDomain(a *agent.DeliveryAgent) AgentDTO {
	assigned := make([]string, 0, len(a.AssignedOrders()))
	for _, orderID := range a.AssignedOrders() {
		assigned = append(assigned, orderID.String())
	}

	var current *uuid.UUID
	if id := a.CurrentOrder(); id != nil {
		raw := id.Bytes()
		current = &raw
	}

	return AgentDTO{
		ID:             a.ID().Bytes(),
		Name:           a.Name(),
		IsActive:       a.IsActive(),
		Status:         a.Status().String(),
		CurrentOrder:   current,
		AssignedOrders: assigned,
		Version:        a.Version(),
	}
}

func toDomain(dto AgentDTO) (*agent.DeliveryAgent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := agent.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var current *kernel.UUID
	if dto.CurrentOrder != nil {
		parsed, curErr := kernel.UUIDFromBytes((*dto.CurrentOrder)[:])
		if curErr != nil {
			return nil, curErr
		}
		current = &parsed
	}

	assigned := make([]kernel.UUID, 0, len(dto.AssignedOrders))
	for _, raw := range dto.AssignedOrders {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		assigned = append(assigned, orderID)
	}

	return agent.RestoreDeliveryAgent(id, dto.Name, dto.IsActive, status, current, assigned, dto.Version)
}
