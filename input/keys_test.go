package input

import (
	"errors"
	"testing"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{KeySpace, "Space Bar"},
		{"A", "A"},
		{"Digit7", "7"},
		{"Numpad3", "Num 3"},
		{"F12", "F12"},
		{"ArrowLeft", "Arrow Left"},
		{KeyShiftLeft, "Shift Left"},
		{LeftMouseButton, "Left Mouse Button"},
		{ThumbMouseButton2, "Thumb Mouse Button 2"},
		{MouseX, "Mouse X"},
		{MouseY, "Mouse Y"},
		{GamepadFaceButtonBottom, "Gamepad Face Button Bottom"},
		{GamepadDPadUp, "Gamepad DPad Up"},
		{"Semicolon", ";"},
		{None, ""},
	}

	for _, c := range cases {
		t.Run(string(c.key), func(t *testing.T) {
			if got := c.key.DisplayName(); got != c.want {
				t.Fatalf("DisplayName(%q) = %q, want %q", c.key, got, c.want)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    Key
		wantErr bool
	}{
		{"exact", "Space", KeySpace, false},
		{"lower", "space", KeySpace, false},
		{"padded", "  leftmousebutton ", LeftMouseButton, false},
		{"axis", "mousey", MouseY, false},
		{"unknown", "NotAKey", None, true},
		{"empty", "", None, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseKey(c.in)
			if c.wantErr {
				if !errors.Is(err, ErrUnknownKey) {
					t.Fatalf("expected ErrUnknownKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("ParseKey(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestKeyKind(t *testing.T) {
	cases := []struct {
		key  Key
		want Kind
	}{
		{"W", KindKeyboard},
		{RightMouseButton, KindMouseButton},
		{MouseWheelAxis, KindMouseAxis},
		{GamepadRightTrigger, KindGamepadButton},
		{GamepadLeftStickX, KindGamepadAxis},
		{"Unheard", KindUnknown},
	}

	for _, c := range cases {
		if got := c.key.Kind(); got != c.want {
			t.Fatalf("%q.Kind() = %v, want %v", c.key, got, c.want)
		}
	}

	if !Key("Unheard").Valid() || Key("Unheard").Known() {
		t.Fatalf("unknown names should be valid but not known")
	}
	if None.Valid() {
		t.Fatalf("empty key should not be valid")
	}
}

func TestIsModifier(t *testing.T) {
	for _, k := range []Key{KeyShiftLeft, KeyCtrlRight, KeyAltLeft, KeyMetaRight, "Shift"} {
		if !k.IsModifier() {
			t.Fatalf("%q should be a modifier", k)
		}
	}
	for _, k := range []Key{"A", KeySpace, LeftMouseButton} {
		if k.IsModifier() {
			t.Fatalf("%q should not be a modifier", k)
		}
	}
}

func TestChord(t *testing.T) {
	if got := Chord(Modifiers{}, "S"); got != "S" {
		t.Fatalf("Chord without modifiers = %q", got)
	}
	if got := Chord(Modifiers{Shift: true, Ctrl: true}, "S"); got != "Shift+Ctrl+S" {
		t.Fatalf("Chord = %q, want Shift+Ctrl+S", got)
	}
	if got := Chord(Modifiers{Cmd: true}, LeftMouseButton); got != "Cmd+Left Mouse Button" {
		t.Fatalf("Chord = %q", got)
	}
}
