package poll

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/keybindings/input"
)

var (
	ebitenKeys = map[input.Key]ebiten.Key{}

	mouseButtons = map[ebiten.MouseButton]input.Key{
		ebiten.MouseButtonLeft:   input.LeftMouseButton,
		ebiten.MouseButtonRight:  input.RightMouseButton,
		ebiten.MouseButtonMiddle: input.MiddleMouseButton,
		ebiten.MouseButton3:      input.ThumbMouseButton,
		ebiten.MouseButton4:      input.ThumbMouseButton2,
	}
	mouseKeys = map[input.Key]ebiten.MouseButton{}

	gamepadButtons = map[ebiten.StandardGamepadButton]input.Key{
		ebiten.StandardGamepadButtonRightBottom:      input.GamepadFaceButtonBottom,
		ebiten.StandardGamepadButtonRightRight:       input.GamepadFaceButtonRight,
		ebiten.StandardGamepadButtonRightLeft:        input.GamepadFaceButtonLeft,
		ebiten.StandardGamepadButtonRightTop:         input.GamepadFaceButtonTop,
		ebiten.StandardGamepadButtonFrontTopLeft:     input.GamepadLeftShoulder,
		ebiten.StandardGamepadButtonFrontTopRight:    input.GamepadRightShoulder,
		ebiten.StandardGamepadButtonFrontBottomLeft:  input.GamepadLeftTrigger,
		ebiten.StandardGamepadButtonFrontBottomRight: input.GamepadRightTrigger,
		ebiten.StandardGamepadButtonCenterLeft:       input.GamepadSpecialLeft,
		ebiten.StandardGamepadButtonCenterRight:      input.GamepadSpecialRight,
		ebiten.StandardGamepadButtonLeftStick:        input.GamepadLeftThumbstick,
		ebiten.StandardGamepadButtonRightStick:       input.GamepadRightThumbstick,
		ebiten.StandardGamepadButtonLeftTop:          input.GamepadDPadUp,
		ebiten.StandardGamepadButtonLeftBottom:       input.GamepadDPadDown,
		ebiten.StandardGamepadButtonLeftLeft:         input.GamepadDPadLeft,
		ebiten.StandardGamepadButtonLeftRight:        input.GamepadDPadRight,
		ebiten.StandardGamepadButtonCenterCenter:     input.GamepadCenter,
	}
	gamepadKeys = map[input.Key]ebiten.StandardGamepadButton{}

	gamepadAxes = map[input.Key]ebiten.StandardGamepadAxis{
		input.GamepadLeftStickX:  ebiten.StandardGamepadAxisLeftStickHorizontal,
		input.GamepadLeftStickY:  ebiten.StandardGamepadAxisLeftStickVertical,
		input.GamepadRightStickX: ebiten.StandardGamepadAxisRightStickHorizontal,
		input.GamepadRightStickY: ebiten.StandardGamepadAxisRightStickVertical,
	}
)

func init() {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		ebitenKeys[input.Key(k.String())] = k
	}
	for b, k := range mouseButtons {
		mouseKeys[k] = b
	}
	for b, k := range gamepadButtons {
		gamepadKeys[k] = b
	}
}

// KeyFromEbiten names an ebiten keyboard key.
func KeyFromEbiten(k ebiten.Key) input.Key {
	return input.Key(k.String())
}

// EbitenKey resolves a keyboard key name.
func EbitenKey(k input.Key) (ebiten.Key, bool) {
	ek, ok := ebitenKeys[k]
	return ek, ok
}

// KeyFromMouseButton names a mouse button.
func KeyFromMouseButton(b ebiten.MouseButton) (input.Key, bool) {
	k, ok := mouseButtons[b]
	return k, ok
}

// KeyFromGamepadButton names a standard gamepad button.
func KeyFromGamepadButton(b ebiten.StandardGamepadButton) (input.Key, bool) {
	k, ok := gamepadButtons[b]
	return k, ok
}

// ModifiersFrom reads the modifier state through pressed, which is
// ebiten.IsKeyPressed outside of tests.
func ModifiersFrom(pressed func(ebiten.Key) bool) input.Modifiers {
	return input.Modifiers{
		Shift: pressed(ebiten.KeyShift),
		Ctrl:  pressed(ebiten.KeyControl),
		Alt:   pressed(ebiten.KeyAlt),
		Cmd:   pressed(ebiten.KeyMeta),
	}
}
