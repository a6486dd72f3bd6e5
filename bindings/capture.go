package bindings

import (
	"math"

	"github.com/milk9111/keybindings/input"
)

// MotionThreshold is the cursor travel, in pixels per frame, a capture needs
// before it binds an axis to mouse motion.
const MotionThreshold = 4

// Capture rebinds one binding to the next key, button or mouse motion the
// player produces. Escape cancels.
//
// A modifier key pressed on its own is held back: if a non-modifier key
// follows while it is still down the pair is bound as a chord, otherwise the
// modifier key itself is bound once it is released.
type Capture struct {
	action *InputAction
	axis   *InputAxis

	pendingModifier input.Key
}

// CaptureAction starts a capture that will rebind current.
func CaptureAction(current InputAction) *Capture {
	return &Capture{action: &current}
}

// CaptureAxis starts a capture that will rebind current.
func CaptureAxis(current InputAxis) *Capture {
	return &Capture{axis: &current}
}

// Name is the action or axis being rebound.
func (c *Capture) Name() string {
	if c.action != nil {
		return c.action.ActionName
	}
	return c.axis.AxisName
}

// Offer feeds one frame of events to the capture. done reports that the
// capture is finished, either because an event was bound or because it was
// cancelled; rebound reports whether the accessor accepted the rebind.
func (c *Capture) Offer(a *Accessor, held input.Modifiers, keys []KeyEvent, pointers []PointerEvent) (done, rebound bool) {
	for _, ev := range keys {
		switch {
		case ev.Key == input.KeyEscape:
			return true, false
		case ev.Key.IsModifier():
			if c.pendingModifier == input.None {
				c.pendingModifier = ev.Key
			}
		default:
			return true, c.bindKey(a, ev)
		}
	}

	for _, ev := range pointers {
		if ev.Button != input.None {
			return true, c.bindPointerButton(a, ev)
		}
		if c.axis != nil && math.Max(math.Abs(ev.DeltaX), math.Abs(ev.DeltaY)) >= MotionThreshold {
			return true, a.RebindAxis(*c.axis, AxisFromPointerMotionEvent(ev))
		}
	}

	if c.pendingModifier != input.None && !held.Any() {
		return true, c.bindKey(a, KeyEvent{Key: c.pendingModifier})
	}
	return false, false
}

func (c *Capture) bindKey(a *Accessor, ev KeyEvent) bool {
	if c.action != nil {
		return a.RebindAction(*c.action, ActionFromKeyEvent(ev))
	}
	return a.RebindAxis(*c.axis, c.keepScale(AxisFromKeyEvent(ev)))
}

func (c *Capture) bindPointerButton(a *Accessor, ev PointerEvent) bool {
	if c.action != nil {
		return a.RebindAction(*c.action, ActionFromPointerEvent(ev))
	}
	return a.RebindAxis(*c.axis, c.keepScale(AxisFromPointerButtonEvent(ev)))
}

// keepScale carries the old scale over to a button binding so that, e.g.,
// a "move left" key stays negative.
func (c *Capture) keepScale(ax InputAxis) InputAxis {
	if c.axis.Scale != 0 {
		ax.Scale = c.axis.Scale
	}
	return ax
}
