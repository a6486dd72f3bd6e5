package registry

import "slices"

// Consumer is anything holding a key map built from the registry.
type Consumer interface {
	// ForceRebuildKeyMaps marks the consumer's cached key maps stale so they
	// are rebuilt before the next poll.
	ForceRebuildKeyMaps()
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func()

func (f ConsumerFunc) ForceRebuildKeyMaps() { f() }

// Subscription is an active consumer registration.
type Subscription struct {
	id       uint64
	registry *Registry
}

// Unsubscribe detaches the consumer. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.registry == nil {
		return
	}
	s.registry.unsubscribe(s.id)
	s.registry = nil
}

// Subscribe registers c to be told whenever the bindings change.
func (r *Registry) Subscribe(c Consumer) *Subscription {
	r.nextID++
	id := r.nextID
	r.consumers[id] = c
	r.order = append(r.order, id)
	return &Subscription{id: id, registry: r}
}

func (r *Registry) unsubscribe(id uint64) {
	delete(r.consumers, id)
	r.order = slices.DeleteFunc(r.order, func(v uint64) bool { return v == id })
}

// Consumers reports how many consumers are subscribed.
func (r *Registry) Consumers() int {
	return len(r.order)
}

// Broadcast tells every subscribed consumer, in subscription order, to
// rebuild its key maps.
func (r *Registry) Broadcast() {
	for _, id := range slices.Clone(r.order) {
		if c, ok := r.consumers[id]; ok {
			c.ForceRebuildKeyMaps()
		}
	}
}
