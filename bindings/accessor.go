package bindings

import (
	"log/slog"
)

// Accessor reads and edits the binding registry on behalf of scripts and UI.
//
// Every mutation is a single scan, mutate, persist and broadcast step. A false
// return means either no registry is attached or nothing matched; in both
// cases nothing was persisted and no consumer was notified. A true return
// means the registry changed in memory and consumers were notified; whether
// it also reached the store is reported by PersistErr.
//
// Accessor is not safe for concurrent use; call it from the game thread.
type Accessor struct {
	repo       Repository
	logger     *slog.Logger
	persistErr error
}

type Option func(*Accessor)

// WithLogger sets the logger used to report persist failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *Accessor) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAccessor returns an accessor over repo. repo may be nil, in which case
// queries return nothing and mutations fail until SetRepository is called.
func NewAccessor(repo Repository, opts ...Option) *Accessor {
	a := &Accessor{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetRepository attaches or detaches the registry.
func (a *Accessor) SetRepository(repo Repository) {
	a.repo = repo
}

// Available reports whether a registry is attached.
func (a *Accessor) Available() bool {
	return a != nil && a.repo != nil
}

// ListActionBindings returns every action binding in registry order.
func (a *Accessor) ListActionBindings() []InputAction {
	if !a.Available() {
		return []InputAction{}
	}
	mappings := a.repo.ActionMappings()
	out := make([]InputAction, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, ActionFromMapping(m))
	}
	return out
}

// ListAxisBindings returns every axis binding in registry order.
func (a *Accessor) ListAxisBindings() []InputAxis {
	if !a.Available() {
		return []InputAxis{}
	}
	mappings := a.repo.AxisMappings()
	out := make([]InputAxis, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, AxisFromMapping(m))
	}
	return out
}

// FindActionBindings returns the action bindings named name, in registry order.
func (a *Accessor) FindActionBindings(name string) []InputAction {
	out := []InputAction{}
	for _, b := range a.ListActionBindings() {
		if b.ActionName == name {
			out = append(out, b)
		}
	}
	return out
}

// FindAxisBindings returns the axis bindings named name, in registry order.
func (a *Accessor) FindAxisBindings(name string) []InputAxis {
	out := []InputAxis{}
	for _, b := range a.ListAxisBindings() {
		if b.AxisName == name {
			out = append(out, b)
		}
	}
	return out
}

// RebindAxis finds the first axis entry with current's name and key and gives
// it replacement's key and scale. Later duplicates are left alone.
func (a *Accessor) RebindAxis(current, replacement InputAxis) bool {
	if !a.Available() {
		return false
	}
	i, ok := a.repo.FindAxis(func(m AxisMapping) bool {
		return m.Name == current.AxisName && m.Key == current.Key
	})
	if !ok {
		return false
	}
	m := current.Mapping()
	applyAxis(replacement, &m)
	a.repo.SetAxis(i, m)
	a.commit("rebind_axis")
	return true
}

// RebindAction finds the first action entry with current's name and key and
// gives it replacement's key and modifiers. Later duplicates are left alone.
func (a *Accessor) RebindAction(current, replacement InputAction) bool {
	if !a.Available() {
		return false
	}
	i, ok := a.repo.FindAction(func(m ActionMapping) bool {
		return m.Name == current.ActionName && m.Key == current.Key
	})
	if !ok {
		return false
	}
	m := current.Mapping()
	applyAction(replacement, &m)
	a.repo.SetAction(i, m)
	a.commit("rebind_action")
	return true
}

// AddAxisBinding adds newBinding's key and scale under owner's axis name
// unless an identical entry already exists.
//
// Success means the resulting entry sits at a non-zero index, so adding the
// first entry of an empty registry reports false even though the entry was
// added (and is not persisted until the next successful mutation).
func (a *Accessor) AddAxisBinding(newBinding, owner InputAxis) bool {
	if !a.Available() {
		return false
	}
	m := AxisMapping{Name: owner.AxisName}
	applyAxis(newBinding, &m)
	if a.repo.AddUniqueAxis(m) <= 0 {
		return false
	}
	a.commit("add_axis")
	return true
}

// AddActionBinding adds newBinding's key and modifiers under owner's action
// name unless an identical entry already exists. See AddAxisBinding for the
// meaning of the result.
func (a *Accessor) AddActionBinding(newBinding, owner InputAction) bool {
	if !a.Available() {
		return false
	}
	m := ActionMapping{Name: owner.ActionName}
	applyAction(newBinding, &m)
	if a.repo.AddUniqueAction(m) <= 0 {
		return false
	}
	a.commit("add_action")
	return true
}

// RemoveAxisBinding deletes every axis entry bound to target's key, whatever
// its axis name.
func (a *Accessor) RemoveAxisBinding(target InputAxis) bool {
	if !a.Available() {
		return false
	}
	n := a.repo.RemoveAxesWhere(func(m AxisMapping) bool {
		return m.Key == target.Key
	})
	if n == 0 {
		return false
	}
	a.commit("remove_axis")
	return true
}

// RemoveActionBinding deletes every action entry bound to target's key,
// whatever its action name.
func (a *Accessor) RemoveActionBinding(target InputAction) bool {
	if !a.Available() {
		return false
	}
	n := a.repo.RemoveActionsWhere(func(m ActionMapping) bool {
		return m.Key == target.Key
	})
	if n == 0 {
		return false
	}
	a.commit("remove_action")
	return true
}

// PersistErr is the store error from the most recent successful mutation,
// or nil if that mutation was written. Failed mutations do not touch it.
func (a *Accessor) PersistErr() error {
	if a == nil {
		return nil
	}
	return a.persistErr
}

// commit persists the registry and tells consumers to rebuild. A failed
// write leaves the in-memory change live; consumers still rebuild so that
// what they poll matches the registry.
func (a *Accessor) commit(op string) {
	a.persistErr = a.repo.Persist()
	if a.persistErr != nil {
		a.logger.Error("bindings: persist failed", "op", op, "err", a.persistErr)
	}
	a.repo.Broadcast()
}
