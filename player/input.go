package player

import (
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
	"github.com/milk9111/keybindings/registry"
)

// State is the raw device state for one frame.
type State interface {
	// Pressed reports whether a button or key is held.
	Pressed(k input.Key) bool
	// Value is the analog value of k this frame: the motion delta for mouse
	// axes, the stick position for gamepad axes, and 1 or 0 for buttons.
	Value(k input.Key) float64
	Modifiers() input.Modifiers
}

// Source provides the bindings a key map is built from.
type Source interface {
	ActionMappings() []bindings.ActionMapping
	AxisMappings() []bindings.AxisMapping
}

// Input turns device state into named actions and axes using a key map
// cached from the registry. The cache is rebuilt only after the registry
// broadcasts a change, at the start of the next Update.
type Input struct {
	source Source
	sub    *registry.Subscription

	forceRebuild bool
	rebuilds     int

	actions map[string][]bindings.ActionMapping
	axes    map[string][]bindings.AxisMapping

	pressed     map[string]bool
	prevPressed map[string]bool
	axisValues  map[string]float64
}

// New returns an input consumer subscribed to r.
func New(r *registry.Registry) *Input {
	p := NewWithSource(r)
	p.sub = r.Subscribe(p)
	return p
}

// NewWithSource returns an unsubscribed consumer over src. The caller is
// responsible for calling ForceRebuildKeyMaps when src changes.
func NewWithSource(src Source) *Input {
	return &Input{
		source:       src,
		forceRebuild: true,
		pressed:      map[string]bool{},
		prevPressed:  map[string]bool{},
		axisValues:   map[string]float64{},
	}
}

// Close unsubscribes from the registry.
func (p *Input) Close() {
	if p.sub != nil {
		p.sub.Unsubscribe()
		p.sub = nil
	}
}

func (p *Input) ForceRebuildKeyMaps() {
	p.forceRebuild = true
}

// Rebuilds reports how many times the key map has been built.
func (p *Input) Rebuilds() int {
	return p.rebuilds
}

func (p *Input) rebuildKeyMaps() {
	p.actions = map[string][]bindings.ActionMapping{}
	p.axes = map[string][]bindings.AxisMapping{}
	if p.source != nil {
		for _, m := range p.source.ActionMappings() {
			p.actions[m.Name] = append(p.actions[m.Name], m)
		}
		for _, m := range p.source.AxisMappings() {
			p.axes[m.Name] = append(p.axes[m.Name], m)
		}
	}
	p.forceRebuild = false
	p.rebuilds++
}

// Update evaluates every bound action and axis against s.
func (p *Input) Update(s State) {
	if p.forceRebuild {
		p.rebuildKeyMaps()
	}

	p.prevPressed, p.pressed = p.pressed, p.prevPressed
	clear(p.pressed)
	clear(p.axisValues)

	if s == nil {
		return
	}

	mods := s.Modifiers()
	for name, mappings := range p.actions {
		for _, m := range mappings {
			if modifiersHeld(m.Modifiers, mods) && s.Pressed(m.Key) {
				p.pressed[name] = true
				break
			}
		}
	}

	for name, mappings := range p.axes {
		var v float64
		for _, m := range mappings {
			v += float64(m.Scale) * s.Value(m.Key)
		}
		p.axisValues[name] = v
	}
}

// modifiersHeld reports whether every modifier the mapping requires is held.
// Extra held modifiers do not block the mapping.
func modifiersHeld(want, have input.Modifiers) bool {
	return (!want.Shift || have.Shift) &&
		(!want.Ctrl || have.Ctrl) &&
		(!want.Alt || have.Alt) &&
		(!want.Cmd || have.Cmd)
}

func (p *Input) ActionPressed(name string) bool {
	return p.pressed[name]
}

func (p *Input) ActionJustPressed(name string) bool {
	return p.pressed[name] && !p.prevPressed[name]
}

func (p *Input) ActionJustReleased(name string) bool {
	return !p.pressed[name] && p.prevPressed[name]
}

// AxisValue is the sum of scale times raw value over every key bound to the
// axis.
func (p *Input) AxisValue(name string) float64 {
	return p.axisValues[name]
}

// Bound reports the keys currently bound to an action, in registry order, as
// of the last rebuild.
func (p *Input) Bound(action string) []input.Key {
	keys := make([]input.Key, 0, len(p.actions[action]))
	for _, m := range p.actions[action] {
		keys = append(keys, m.Key)
	}
	return keys
}
