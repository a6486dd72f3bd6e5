package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/milk9111/keybindings/bindings"
)

// Mappings is the persisted form of the registry.
type Mappings struct {
	Actions []bindings.ActionMapping `yaml:"actions"`
	Axes    []bindings.AxisMapping   `yaml:"axes"`
}

// Clone returns a deep copy of m.
func (m Mappings) Clone() Mappings {
	return Mappings{
		Actions: slices.Clone(m.Actions),
		Axes:    slices.Clone(m.Axes),
	}
}

// Validate rejects entries without a name or key.
func (m Mappings) Validate() error {
	for i, a := range m.Actions {
		if a.Name == "" {
			return fmt.Errorf("actions[%d]: missing name", i)
		}
		if !a.Key.Valid() {
			return fmt.Errorf("actions[%d] %q: missing key", i, a.Name)
		}
	}
	for i, a := range m.Axes {
		if a.Name == "" {
			return fmt.Errorf("axes[%d]: missing name", i)
		}
		if !a.Key.Valid() {
			return fmt.Errorf("axes[%d] %q: missing key", i, a.Name)
		}
	}
	return nil
}

// Registry holds the game's action and axis bindings. It is loaded once from
// a Store, edited in place and written back through Persist.
//
// Registry is not safe for concurrent use.
type Registry struct {
	actions []bindings.ActionMapping
	axes    []bindings.AxisMapping

	store  Store
	logger *slog.Logger

	consumers map[uint64]Consumer
	order     []uint64
	nextID    uint64
}

var _ bindings.Repository = (*Registry)(nil)

type Option func(*Registry)

// WithLogger sets the registry's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a registry holding m and backed by store. store may be nil for
// a registry that is never persisted.
func New(store Store, m Mappings, opts ...Option) *Registry {
	r := &Registry{
		store:     store,
		logger:    slog.Default(),
		consumers: map[uint64]Consumer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.replace(m)
	return r
}

// Load reads the bindings from store and returns a registry over them.
func Load(store Store, opts ...Option) (*Registry, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	m, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("registry: load: %w", err)
	}
	r := New(store, m, opts...)
	r.logger.Debug("registry: loaded", "store", store.String(), "actions", len(r.actions), "axes", len(r.axes))
	return r, nil
}

// Reload replaces both lists with the store's contents and tells consumers
// to rebuild. On error the registry is left unchanged.
func (r *Registry) Reload() error {
	if r.store == nil {
		return ErrNoStore
	}
	m, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("registry: reload: %w", err)
	}
	r.replace(m)
	r.logger.Info("registry: reloaded", "store", r.store.String(), "actions", len(r.actions), "axes", len(r.axes))
	r.Broadcast()
	return nil
}

// Snapshot returns a copy of both lists.
func (r *Registry) Snapshot() Mappings {
	return Mappings{Actions: r.ActionMappings(), Axes: r.AxisMappings()}
}

// Store returns the registry's backing store, or nil.
func (r *Registry) Store() Store {
	return r.store
}

func (r *Registry) replace(m Mappings) {
	m = m.Clone()
	r.actions = m.Actions
	r.axes = m.Axes
}

func (r *Registry) ActionMappings() []bindings.ActionMapping {
	return slices.Clone(r.actions)
}

func (r *Registry) AxisMappings() []bindings.AxisMapping {
	return slices.Clone(r.axes)
}

func (r *Registry) FindAction(match func(bindings.ActionMapping) bool) (int, bool) {
	i := slices.IndexFunc(r.actions, match)
	return i, i >= 0
}

func (r *Registry) FindAxis(match func(bindings.AxisMapping) bool) (int, bool) {
	i := slices.IndexFunc(r.axes, match)
	return i, i >= 0
}

func (r *Registry) SetAction(i int, m bindings.ActionMapping) {
	r.actions[i] = m
}

func (r *Registry) SetAxis(i int, m bindings.AxisMapping) {
	r.axes[i] = m
}

func (r *Registry) AddUniqueAction(m bindings.ActionMapping) int {
	if i := slices.Index(r.actions, m); i >= 0 {
		return i
	}
	r.actions = append(r.actions, m)
	return len(r.actions) - 1
}

func (r *Registry) AddUniqueAxis(m bindings.AxisMapping) int {
	if i := slices.Index(r.axes, m); i >= 0 {
		return i
	}
	r.axes = append(r.axes, m)
	return len(r.axes) - 1
}

func (r *Registry) RemoveActionsWhere(match func(bindings.ActionMapping) bool) int {
	before := len(r.actions)
	r.actions = slices.DeleteFunc(r.actions, match)
	return before - len(r.actions)
}

func (r *Registry) RemoveAxesWhere(match func(bindings.AxisMapping) bool) int {
	before := len(r.axes)
	r.axes = slices.DeleteFunc(r.axes, match)
	return before - len(r.axes)
}

// Persist writes the current bindings to the store.
func (r *Registry) Persist() error {
	if r.store == nil {
		return ErrNoStore
	}
	if err := r.store.Save(r.Snapshot()); err != nil {
		return fmt.Errorf("registry: persist: %w", err)
	}
	r.logger.Debug("registry: persisted", "store", r.store.String())
	return nil
}
