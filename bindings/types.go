package bindings

import (
	"fmt"

	"github.com/milk9111/keybindings/input"
)

// ActionMapping is a discrete binding as the registry stores it.
type ActionMapping struct {
	Name            string    `yaml:"name"`
	Key             input.Key `yaml:"key"`
	input.Modifiers `yaml:",inline"`
}

// AxisMapping is a continuous binding as the registry stores it. Scale is the
// sign and weight applied to the raw input before it is summed into the axis.
type AxisMapping struct {
	Name  string    `yaml:"name"`
	Key   input.Key `yaml:"key"`
	Scale float32   `yaml:"scale"`
}

func (m ActionMapping) String() string {
	return fmt.Sprintf("%s=%s", m.Name, input.Chord(m.Modifiers, m.Key))
}

func (m AxisMapping) String() string {
	return fmt.Sprintf("%s=%s*%g", m.Name, m.Key.DisplayName(), m.Scale)
}

// InputAction describes an action binding for callers outside the registry.
// The display string is always derived from Key.
type InputAction struct {
	ActionName string
	Key        input.Key
	input.Modifiers
}

// InputAxis describes an axis binding for callers outside the registry.
type InputAxis struct {
	AxisName string
	Key      input.Key
	Scale    float32
}

func NewInputAction(name string, key input.Key, mods input.Modifiers) InputAction {
	return InputAction{ActionName: name, Key: key, Modifiers: mods}
}

func NewInputAxis(name string, key input.Key, scale float32) InputAxis {
	return InputAxis{AxisName: name, Key: key, Scale: scale}
}

func (a InputAction) String() string {
	return fmt.Sprintf("%s=%s", a.ActionName, input.Chord(a.Modifiers, a.Key))
}

func (a InputAxis) String() string {
	return fmt.Sprintf("%s=%s*%g", a.AxisName, a.Key.DisplayName(), a.Scale)
}

// KeyAsString is the display name of the bound key.
func (a InputAction) KeyAsString() string {
	return a.Key.DisplayName()
}

// KeyAsString is the display name of the bound key.
func (a InputAxis) KeyAsString() string {
	return a.Key.DisplayName()
}

// ActionFromMapping converts a registry entry into its descriptive record.
func ActionFromMapping(m ActionMapping) InputAction {
	return InputAction{ActionName: m.Name, Key: m.Key, Modifiers: m.Modifiers}
}

// AxisFromMapping converts a registry entry into its descriptive record.
func AxisFromMapping(m AxisMapping) InputAxis {
	return InputAxis{AxisName: m.Name, Key: m.Key, Scale: m.Scale}
}

// Mapping converts a into a registry entry.
func (a InputAction) Mapping() ActionMapping {
	return ActionMapping{Name: a.ActionName, Key: a.Key, Modifiers: a.Modifiers}
}

// Mapping converts a into a registry entry.
func (a InputAxis) Mapping() AxisMapping {
	return AxisMapping{Name: a.AxisName, Key: a.Key, Scale: a.Scale}
}

// applyAction copies the key and modifiers of src onto dst, keeping dst's name.
func applyAction(src InputAction, dst *ActionMapping) {
	dst.Key = src.Key
	dst.Modifiers = src.Modifiers
}

// applyAxis copies the key and scale of src onto dst, keeping dst's name.
func applyAxis(src InputAxis, dst *AxisMapping) {
	dst.Key = src.Key
	dst.Scale = src.Scale
}
