// Package notifications implements the fan-out of committed order events to
// live client connections. It has two parts: the Registry, which tracks open
// channels per {role, id} membership, and the Dispatcher, which delivers a
// committed event to every registered channel of an audience.
//
// Delivery is fire-and-forget: events to unregistered audiences are dropped,
// nothing is queued or persisted, and a failing channel is logged without
// affecting the originating command or the other channels. The registry is
// in-memory only; reconnecting clients re-join explicitly.
package notifications

import "context"

// Event is one role-scoped notification payload.
type Event struct {
	Type        string         `json:"type"`
	OrderNumber string         `json:"orderNumber,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// Channel is one live client connection (a websocket session, an SSE stream,
// a test double). Send must be safe for concurrent use; a returned error
// marks this delivery as failed without any retry.
type Channel interface {
	Send(ctx context.Context, event Event) error
}
