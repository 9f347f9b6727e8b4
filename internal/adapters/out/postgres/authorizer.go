package postgres

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MembershipAuthorizer gates notification registry joins against the
// database: buyers and sellers must own at least one order under that role,
// agents must be registered and active, admins come from configuration.
type MembershipAuthorizer struct {
	db       *gorm.DB
	adminIDs map[kernel.UUID]struct{}
}

// NewMembershipAuthorizer creates an authorizer over the given connection.
func NewMembershipAuthorizer(db *gorm.DB, adminIDs []kernel.UUID) *MembershipAuthorizer {
	admins := make(map[kernel.UUID]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &MembershipAuthorizer{db: db, adminIDs: admins}
}

// Authorize reports whether the party may join the registry under the role.
func (a *MembershipAuthorizer) Authorize(ctx context.Context, role kernel.Role, id kernel.UUID) error {
	switch role {
	case kernel.RoleBuyer:
		return a.requireOrderParty(ctx, "buyer_id", id)
	case kernel.RoleSeller:
		return a.requireOrderParty(ctx, "seller_id", id)
	case kernel.RoleDeliveryAgent:
		return a.requireActiveAgent(ctx, id)
	case kernel.RoleAdmin:
		if _, ok := a.adminIDs[id]; !ok {
			return errs.NewUnauthorizedError("unknown admin " + id.String())
		}
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

func (a *MembershipAuthorizer) requireOrderParty(ctx context.Context, column string, id kernel.UUID) error {
	var count int64
	err := a.db.WithContext(ctx).
		Table("orders").
		Where(column+" = ?", id.Bytes()).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewUnauthorizedError(column + " " + id.String() + " has no orders")
	}
	return nil
}

func (a *MembershipAuthorizer) requireActiveAgent(ctx context.Context, id kernel.UUID) error {
	var count int64
	err := a.db.WithContext(ctx).
		Table("agents").
		Where("id = ? AND is_active", id.Bytes()).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewUnauthorizedError("agent " + id.String() + " is not registered or inactive")
	}
	return nil
}
