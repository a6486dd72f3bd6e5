package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Key names a physical input: a keyboard key (spelled the way ebiten.Key.String
// spells it), a mouse button, a gamepad button, or a synthetic axis key.
type Key string

// None is the zero key. It never matches a real input.
const None Key = ""

// Mouse buttons.
const (
	LeftMouseButton   Key = "LeftMouseButton"
	RightMouseButton  Key = "RightMouseButton"
	MiddleMouseButton Key = "MiddleMouseButton"
	ThumbMouseButton  Key = "ThumbMouseButton"
	ThumbMouseButton2 Key = "ThumbMouseButton2"
)

// Synthetic axis keys produced from pointer motion and the wheel.
const (
	MouseX         Key = "MouseX"
	MouseY         Key = "MouseY"
	MouseWheelAxis Key = "MouseWheelAxis"
)

// Standard gamepad buttons and stick axes.
const (
	GamepadFaceButtonBottom Key = "GamepadFaceButtonBottom"
	GamepadFaceButtonRight  Key = "GamepadFaceButtonRight"
	GamepadFaceButtonLeft   Key = "GamepadFaceButtonLeft"
	GamepadFaceButtonTop    Key = "GamepadFaceButtonTop"
	GamepadLeftShoulder     Key = "GamepadLeftShoulder"
	GamepadRightShoulder    Key = "GamepadRightShoulder"
	GamepadLeftTrigger      Key = "GamepadLeftTrigger"
	GamepadRightTrigger     Key = "GamepadRightTrigger"
	GamepadSpecialLeft      Key = "GamepadSpecialLeft"
	GamepadSpecialRight     Key = "GamepadSpecialRight"
	GamepadLeftThumbstick   Key = "GamepadLeftThumbstick"
	GamepadRightThumbstick  Key = "GamepadRightThumbstick"
	GamepadDPadUp           Key = "GamepadDPadUp"
	GamepadDPadDown         Key = "GamepadDPadDown"
	GamepadDPadLeft         Key = "GamepadDPadLeft"
	GamepadDPadRight        Key = "GamepadDPadRight"
	GamepadCenter           Key = "GamepadCenter"
	GamepadLeftStickX       Key = "GamepadLeftStickX"
	GamepadLeftStickY       Key = "GamepadLeftStickY"
	GamepadRightStickX      Key = "GamepadRightStickX"
	GamepadRightStickY      Key = "GamepadRightStickY"
)

// Keyboard keys referenced directly by this module.
const (
	KeySpace      Key = "Space"
	KeyEscape     Key = "Escape"
	KeyEnter      Key = "Enter"
	KeyShiftLeft  Key = "ShiftLeft"
	KeyShiftRight Key = "ShiftRight"
	KeyCtrlLeft   Key = "ControlLeft"
	KeyCtrlRight  Key = "ControlRight"
	KeyAltLeft    Key = "AltLeft"
	KeyAltRight   Key = "AltRight"
	KeyMetaLeft   Key = "MetaLeft"
	KeyMetaRight  Key = "MetaRight"
)

// ErrUnknownKey is returned by ParseKey for names outside the known key set.
var ErrUnknownKey = errors.New("input: unknown key")

// Kind classifies a key.
type Kind int

const (
	KindUnknown Kind = iota
	KindKeyboard
	KindMouseButton
	KindMouseAxis
	KindGamepadButton
	KindGamepadAxis
)

func (k Kind) String() string {
	switch k {
	case KindKeyboard:
		return "keyboard"
	case KindMouseButton:
		return "mouse_button"
	case KindMouseAxis:
		return "mouse_axis"
	case KindGamepadButton:
		return "gamepad_button"
	case KindGamepadAxis:
		return "gamepad_axis"
	default:
		return "unknown"
	}
}

var displayOverrides = map[Key]string{
	KeySpace:          "Space Bar",
	"Backquote":       "`",
	"Backslash":       "\\",
	"BracketLeft":     "[",
	"BracketRight":    "]",
	"Comma":           ",",
	"Equal":           "=",
	"Minus":           "-",
	"Period":          ".",
	"Quote":           "'",
	"Semicolon":       ";",
	"Slash":           "/",
	"PageUp":          "Page Up",
	"PageDown":        "Page Down",
	"NumpadAdd":       "Num +",
	"NumpadDecimal":   "Num .",
	"NumpadDivide":    "Num /",
	"NumpadEnter":     "Num Enter",
	"NumpadEqual":     "Num =",
	"NumpadMultiply":  "Num *",
	"NumpadSubtract":  "Num -",
	ThumbMouseButton:  "Thumb Mouse Button",
	ThumbMouseButton2: "Thumb Mouse Button 2",
	MouseWheelAxis:    "Mouse Wheel Axis",
}

var (
	known     = map[Key]Kind{}
	knownFold = map[string]Key{}
)

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		register(KindKeyboard, Key(string(c)))
	}
	for d := 0; d <= 9; d++ {
		register(KindKeyboard, Key(fmt.Sprintf("Digit%d", d)), Key(fmt.Sprintf("Numpad%d", d)))
	}
	for f := 1; f <= 24; f++ {
		register(KindKeyboard, Key(fmt.Sprintf("F%d", f)))
	}
	register(KindKeyboard,
		"Alt", "AltLeft", "AltRight",
		"ArrowDown", "ArrowLeft", "ArrowRight", "ArrowUp",
		"Backquote", "Backslash", "Backspace", "BracketLeft", "BracketRight",
		"CapsLock", "Comma", "ContextMenu",
		"Control", "ControlLeft", "ControlRight",
		"Delete", "End", "Enter", "Equal", "Escape", "Home", "Insert",
		"IntlBackslash", "Meta", "MetaLeft", "MetaRight", "Minus", "NumLock",
		"NumpadAdd", "NumpadDecimal", "NumpadDivide", "NumpadEnter",
		"NumpadEqual", "NumpadMultiply", "NumpadSubtract",
		"PageDown", "PageUp", "Pause", "Period", "PrintScreen", "Quote",
		"ScrollLock", "Semicolon", "Shift", "ShiftLeft", "ShiftRight",
		"Slash", "Space", "Tab",
	)
	register(KindMouseButton, LeftMouseButton, RightMouseButton, MiddleMouseButton, ThumbMouseButton, ThumbMouseButton2)
	register(KindMouseAxis, MouseX, MouseY, MouseWheelAxis)
	register(KindGamepadButton,
		GamepadFaceButtonBottom, GamepadFaceButtonRight, GamepadFaceButtonLeft, GamepadFaceButtonTop,
		GamepadLeftShoulder, GamepadRightShoulder, GamepadLeftTrigger, GamepadRightTrigger,
		GamepadSpecialLeft, GamepadSpecialRight, GamepadLeftThumbstick, GamepadRightThumbstick,
		GamepadDPadUp, GamepadDPadDown, GamepadDPadLeft, GamepadDPadRight, GamepadCenter,
	)
	register(KindGamepadAxis, GamepadLeftStickX, GamepadLeftStickY, GamepadRightStickX, GamepadRightStickY)
}

func register(kind Kind, keys ...Key) {
	for _, k := range keys {
		known[k] = kind
		knownFold[strings.ToLower(string(k))] = k
	}
}

// ParseKey resolves a key name case-insensitively to its canonical spelling.
func ParseKey(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if k, ok := knownFold[strings.ToLower(name)]; ok {
		return k, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Kind reports what sort of input k names.
func (k Key) Kind() Kind {
	return known[k]
}

// Valid reports whether k is a non-empty name. Unknown names are still valid
// so that keys reported by newer ebiten versions round-trip through config.
func (k Key) Valid() bool {
	return strings.TrimSpace(string(k)) != ""
}

// Known reports whether k is in the built-in key set.
func (k Key) Known() bool {
	_, ok := known[k]
	return ok
}

// IsModifier reports whether k is one of the shift, control, alt or meta keys.
func (k Key) IsModifier() bool {
	switch k {
	case "Shift", KeyShiftLeft, KeyShiftRight,
		"Control", KeyCtrlLeft, KeyCtrlRight,
		"Alt", KeyAltLeft, KeyAltRight,
		"Meta", KeyMetaLeft, KeyMetaRight:
		return true
	}
	return false
}

func (k Key) String() string {
	return string(k)
}

// DisplayName is the human readable name of k, e.g. "Left Mouse Button" or
// "Space Bar".
func (k Key) DisplayName() string {
	if k == None {
		return ""
	}
	if s, ok := displayOverrides[k]; ok {
		return s
	}
	name := string(k)
	if d, ok := strings.CutPrefix(name, "Digit"); ok && len(d) == 1 {
		return d
	}
	if n, ok := strings.CutPrefix(name, "Numpad"); ok && len(n) == 1 {
		return "Num " + n
	}
	name = strings.TrimPrefix(name, "Gamepad")
	if k.Kind() == KindGamepadButton || k.Kind() == KindGamepadAxis {
		return "Gamepad " + splitWords(name)
	}
	return splitWords(name)
}

// splitWords inserts a space at every lower-to-upper boundary.
func splitWords(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			if unicode.IsUpper(r) && unicode.IsLower(prev) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
