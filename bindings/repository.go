package bindings

// Repository is the binding store the Accessor reads and mutates. Lists are
// ordered and order survives mutation. Implementations are not expected to be
// safe for concurrent use.
type Repository interface {
	// ActionMappings and AxisMappings return snapshots in registry order.
	ActionMappings() []ActionMapping
	AxisMappings() []AxisMapping

	// FindAction and FindAxis return the index of the first entry match
	// accepts.
	FindAction(match func(ActionMapping) bool) (int, bool)
	FindAxis(match func(AxisMapping) bool) (int, bool)

	// SetAction and SetAxis overwrite the entry at i.
	SetAction(i int, m ActionMapping)
	SetAxis(i int, m AxisMapping)

	// AddUniqueAction and AddUniqueAxis append m unless an equal entry
	// exists, and return the index of the entry equal to m either way.
	AddUniqueAction(m ActionMapping) int
	AddUniqueAxis(m AxisMapping) int

	// RemoveActionsWhere and RemoveAxesWhere delete every entry match accepts
	// and return how many were removed.
	RemoveActionsWhere(match func(ActionMapping) bool) int
	RemoveAxesWhere(match func(AxisMapping) bool) int

	// Persist writes both lists to the configuration store.
	Persist() error

	// Broadcast tells every subscribed input consumer to rebuild its key
	// maps before its next poll.
	Broadcast()
}
