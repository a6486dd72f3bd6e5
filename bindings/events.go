package bindings

import (
	"fmt"
	"math"

	"github.com/milk9111/keybindings/input"
)

// PointerEvent is a mouse event as delivered by the poller: the button that
// triggered it (None for pure motion), the modifier state at the time, and
// the cursor movement since the previous sample.
type PointerEvent struct {
	Button input.Key
	input.Modifiers
	DeltaX float64
	DeltaY float64
}

// KeyEvent is a key press, including gamepad buttons.
type KeyEvent struct {
	Key input.Key
	input.Modifiers
}

func (ev PointerEvent) String() string {
	if ev.Button == input.None {
		return fmt.Sprintf("motion(%g,%g)", ev.DeltaX, ev.DeltaY)
	}
	return input.Chord(ev.Modifiers, ev.Button)
}

func (ev KeyEvent) String() string {
	return input.Chord(ev.Modifiers, ev.Key)
}

// ActionFromPointerEvent builds an action record bound to the event's button.
// The action name is left empty for the caller to fill in.
func ActionFromPointerEvent(ev PointerEvent) InputAction {
	return InputAction{Key: ev.Button, Modifiers: ev.Modifiers}
}

// AxisFromPointerButtonEvent treats the event's button as a positive axis.
func AxisFromPointerButtonEvent(ev PointerEvent) InputAxis {
	return InputAxis{Key: ev.Button, Scale: 1}
}

// AxisFromPointerMotionEvent reduces the motion delta to its dominant axis and
// sign. Horizontal must be strictly larger to win, so ties go to MouseY.
func AxisFromPointerMotionEvent(ev PointerEvent) InputAxis {
	if math.Abs(ev.DeltaX) > math.Abs(ev.DeltaY) {
		return InputAxis{Key: input.MouseX, Scale: sign(ev.DeltaX)}
	}
	return InputAxis{Key: input.MouseY, Scale: sign(ev.DeltaY)}
}

// ActionFromKeyEvent builds an action record from a key press.
func ActionFromKeyEvent(ev KeyEvent) InputAction {
	return InputAction{Key: ev.Key, Modifiers: ev.Modifiers}
}

// AxisFromKeyEvent treats the pressed key as a positive axis. Modifiers do not
// apply to axes.
func AxisFromKeyEvent(ev KeyEvent) InputAxis {
	return InputAxis{Key: ev.Key, Scale: 1}
}

func sign(v float64) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}
