package notifications

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
)

// Dispatcher routes committed events to the registry. It is constructed
// explicitly at process start and injected into the command handlers; there
// is no ambient process-wide dispatch state.
//
// Dispatch is synchronous and runs immediately after a commit, so two events
// for the same order are delivered in commit order. Cross-order interleaving
// carries no guarantee.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger.With("component", "notification_dispatcher"),
	}
}

// Emit delivers the event to every live channel registered for {role, id}.
// With no registered channels the event is silently dropped. A failing
// channel is logged through the single error sink and never affects the
// other channels or the originating command.
func (d *Dispatcher) Emit(ctx context.Context, role kernel.Role, id kernel.UUID, event Event) {
	d.deliver(ctx, role, id, d.registry.Channels(role, id), event)
}

// Broadcast delivers the event to every identity joined under the role.
// Used for the admin audience, which is not keyed by a single id.
func (d *Dispatcher) Broadcast(ctx context.Context, role kernel.Role, event Event) {
	for _, id := range d.registry.Members(role) {
		d.deliver(ctx, role, id, d.registry.Channels(role, id), event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, role kernel.Role, id kernel.UUID, chs []Channel, event Event) {
	for _, ch := range chs {
		if err := ch.Send(ctx, event); err != nil {
			d.logger.WarnContext(ctx, "notification delivery failed",
				"role", role.String(),
				"id", id.String(),
				"event", event.Type,
				"error", err,
			)
		}
	}
}
