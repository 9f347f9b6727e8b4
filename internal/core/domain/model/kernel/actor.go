package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies which kind of party is acting on or listening to an order.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleBuyer placed the order and owns it for read/cancel purposes.
	RoleBuyer

	// RoleSeller fulfills the order items and owns processing.
	RoleSeller

	// RoleAdmin owns the approval and assignment decisions.
	RoleAdmin

	// RoleDeliveryAgent executes pickup and delivery.
	RoleDeliveryAgent
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:       "unknown",
		RoleBuyer:         "buyer",
		RoleSeller:        "seller",
		RoleAdmin:         "admin",
		RoleDeliveryAgent: "delivery_agent",
	}
}

// RoleFromString parses a role from its wire representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range roleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsRequiredError("role")
	}
	if _, ok := roleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the identity performing a command: a role plus the party's ID.
// Every accepted status transition records its actor in the order history.
type Actor struct {
	role Role
	id   UUID
}

// NewActor creates a validated Actor.
func NewActor(role Role, id UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{role: role, id: id}, nil
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identity.
func (a Actor) ID() UUID {
	return a.id
}

// IsEqual compares actors by role and identity.
func (a Actor) IsEqual(other Actor) bool {
	return a.role == other.role && a.id.IsEqual(other.id)
}

// String renders "role:id" for logs and history notes.
func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}

// Validate rejects zero-value actors.
func (a Actor) Validate() error {
	if err := a.role.Validate(); err != nil {
		return err
	}
	return a.id.Validate()
}
