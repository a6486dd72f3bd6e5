package poll

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
)

// Device samples ebiten once per frame. It produces the key and pointer
// events used for capturing new bindings, and serves as the State the
// player.Input consumer evaluates bindings against.
//
// Call Update at the start of the game's Update, before reading events or
// evaluating bindings.
type Device struct {
	cursorX, cursorY int
	deltaX, deltaY   float64
	wheel            float64
	primed           bool
	mods             input.Modifiers

	gamepad   ebiten.GamepadID
	hasPad    bool
	keyBuf    []ebiten.Key
	padBuf    []ebiten.GamepadID
	keyEvents []bindings.KeyEvent
	ptrEvents []bindings.PointerEvent
}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) Update() {
	x, y := ebiten.CursorPosition()
	if d.primed {
		d.deltaX = float64(x - d.cursorX)
		d.deltaY = float64(y - d.cursorY)
	}
	d.cursorX, d.cursorY = x, y
	d.primed = true
	_, d.wheel = ebiten.Wheel()

	d.mods = ModifiersFrom(ebiten.IsKeyPressed)

	d.padBuf = ebiten.AppendGamepadIDs(d.padBuf[:0])
	d.hasPad = len(d.padBuf) > 0
	if d.hasPad {
		d.gamepad = d.padBuf[0]
	}

	d.keyEvents = d.keyEvents[:0]
	d.keyBuf = inpututil.AppendJustPressedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		d.keyEvents = append(d.keyEvents, bindings.KeyEvent{Key: KeyFromEbiten(k), Modifiers: d.mods})
	}
	if d.hasPad {
		for b, k := range gamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(d.gamepad, b) {
				d.keyEvents = append(d.keyEvents, bindings.KeyEvent{Key: k, Modifiers: d.mods})
			}
		}
	}

	d.ptrEvents = d.ptrEvents[:0]
	for b, k := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			d.ptrEvents = append(d.ptrEvents, bindings.PointerEvent{
				Button:    k,
				Modifiers: d.mods,
				DeltaX:    d.deltaX,
				DeltaY:    d.deltaY,
			})
		}
	}
	if d.deltaX != 0 || d.deltaY != 0 {
		d.ptrEvents = append(d.ptrEvents, bindings.PointerEvent{
			Modifiers: d.mods,
			DeltaX:    d.deltaX,
			DeltaY:    d.deltaY,
		})
	}
}

// KeyEvents are the keys and gamepad buttons pressed this frame.
func (d *Device) KeyEvents() []bindings.KeyEvent {
	return d.keyEvents
}

// PointerEvents are the mouse buttons pressed this frame, plus one motion
// event (Button == input.None) if the cursor moved.
func (d *Device) PointerEvents() []bindings.PointerEvent {
	return d.ptrEvents
}

func (d *Device) Modifiers() input.Modifiers {
	return d.mods
}

func (d *Device) Pressed(k input.Key) bool {
	switch k.Kind() {
	case input.KindMouseButton:
		b, ok := mouseKeys[k]
		return ok && ebiten.IsMouseButtonPressed(b)
	case input.KindGamepadButton:
		b, ok := gamepadKeys[k]
		return ok && d.hasPad && ebiten.IsStandardGamepadButtonPressed(d.gamepad, b)
	case input.KindMouseAxis, input.KindGamepadAxis:
		return d.Value(k) != 0
	}
	ek, ok := EbitenKey(k)
	return ok && ebiten.IsKeyPressed(ek)
}

func (d *Device) Value(k input.Key) float64 {
	switch k {
	case input.MouseX:
		return d.deltaX
	case input.MouseY:
		return d.deltaY
	case input.MouseWheelAxis:
		return d.wheel
	}
	if a, ok := gamepadAxes[k]; ok {
		if !d.hasPad {
			return 0
		}
		return ebiten.StandardGamepadAxisValue(d.gamepad, a)
	}
	if d.Pressed(k) {
		return 1
	}
	return 0
}
