package input

import "strings"

// Modifiers is the state of the four modifier keys. The flags are independent;
// left and right variants of a modifier are not distinguished.
type Modifiers struct {
	Shift bool `yaml:"shift,omitempty"`
	Ctrl  bool `yaml:"ctrl,omitempty"`
	Alt   bool `yaml:"alt,omitempty"`
	Cmd   bool `yaml:"cmd,omitempty"`
}

// Any reports whether at least one modifier is held.
func (m Modifiers) Any() bool {
	return m.Shift || m.Ctrl || m.Alt || m.Cmd
}

// String renders m as "Shift+Ctrl+Alt+Cmd" with only the held modifiers.
func (m Modifiers) String() string {
	parts := make([]string, 0, 4)
	if m.Shift {
		parts = append(parts, "Shift")
	}
	if m.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if m.Alt {
		parts = append(parts, "Alt")
	}
	if m.Cmd {
		parts = append(parts, "Cmd")
	}
	return strings.Join(parts, "+")
}

// Chord renders the key with its held modifiers, e.g. "Shift+Ctrl+S".
func Chord(m Modifiers, k Key) string {
	if !m.Any() {
		return k.DisplayName()
	}
	return m.String() + "+" + k.DisplayName()
}
