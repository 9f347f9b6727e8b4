package notifications

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// Authorizer decides whether a party may join the registry under a role:
// an order-owning buyer or seller, a registered active delivery agent, or a
// known admin. Implemented by the persistence adapter.
type Authorizer interface {
	Authorize(ctx context.Context, role kernel.Role, id kernel.UUID) error
}

type memberKey struct {
	role kernel.Role
	id   kernel.UUID
}

// Registry tracks live channels per {role, id}. A channel belongs to at most
// one membership at a time: re-joining with a different identity supersedes
// the previous one. State is in-memory only and does not survive a restart.
type Registry struct {
	authorizer Authorizer

	mu        sync.RWMutex
	members   map[memberKey][]Channel
	byChannel map[Channel]memberKey
}

// NewRegistry creates an empty registry gated by the given authorizer.
func NewRegistry(authorizer Authorizer) *Registry {
	return &Registry{
		authorizer: authorizer,
		members:    make(map[memberKey][]Channel),
		byChannel:  make(map[Channel]memberKey),
	}
}

// Join admits a channel into the {role, id} membership after the authorizer
// confirms the party exists and is entitled to the role. A channel already
// joined elsewhere is moved, not duplicated.
func (r *Registry) Join(ctx context.Context, role kernel.Role, id kernel.UUID, ch Channel) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return err
	}
	if err := r.authorizer.Authorize(ctx, role, id); err != nil {
		return err
	}

	key := memberKey{role: role, id: id}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byChannel[ch]; ok {
		if prev == key {
			return nil
		}
		r.removeLocked(prev, ch)
	}
	r.members[key] = append(r.members[key], ch)
	r.byChannel[ch] = key
	return nil
}

// Leave removes the channel from its membership. Unknown channels are ignored.
func (r *Registry) Leave(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.byChannel[ch]
	if !ok {
		return
	}
	r.removeLocked(key, ch)
	delete(r.byChannel, ch)
}

// Channels returns a snapshot of the live channels for {role, id}.
func (r *Registry) Channels(role kernel.Role, id kernel.UUID) []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chs := r.members[memberKey{role: role, id: id}]
	if len(chs) == 0 {
		return nil
	}
	return append([]Channel(nil), chs...)
}

// Members returns a snapshot of the identities currently joined under a role.
func (r *Registry) Members(role kernel.Role) []kernel.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []kernel.UUID
	for key := range r.members {
		if key.role == role && len(r.members[key]) > 0 {
			ids = append(ids, key.id)
		}
	}
	return ids
}

func (r *Registry) removeLocked(key memberKey, ch Channel) {
	chs := r.members[key]
	for i, c := range chs {
		if c == ch {
			r.members[key] = append(chs[:i], chs[i+1:]...)
			break
		}
	}
	if len(r.members[key]) == 0 {
		delete(r.members, key)
	}
}
