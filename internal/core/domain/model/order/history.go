package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// HistoryEntry is one audit record in the order's append-only status history.
// The history is strictly linear in commit order for a single order; its
// length always equals the number of accepted transitions plus the creation
// entry.
type HistoryEntry struct {
	status Status
	actor  kernel.Actor
	at     time.Time
	notes  string
}

// RestoreHistoryEntry reconstructs a history entry from persistence.
func RestoreHistoryEntry(status Status, actor kernel.Actor, at time.Time, notes string) HistoryEntry {
	return HistoryEntry{status: status, actor: actor, at: at, notes: notes}
}

// Status returns the status recorded by this entry.
func (h HistoryEntry) Status() Status { return h.status }

// Actor returns who caused the entry.
func (h HistoryEntry) Actor() kernel.Actor { return h.actor }

// At returns when the entry was recorded.
func (h HistoryEntry) At() time.Time { return h.at }

// Notes returns the free-form notes attached to the transition.
func (h HistoryEntry) Notes() string { return h.notes }
