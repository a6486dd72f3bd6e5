package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
)

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func actionObject(a bindings.InputAction) tengo.Object {
	return &tengo.Map{Value: map[string]tengo.Object{
		"name":        &tengo.String{Value: a.ActionName},
		"key":         &tengo.String{Value: string(a.Key)},
		"key_display": &tengo.String{Value: a.KeyAsString()},
		"shift":       boolObject(a.Shift),
		"ctrl":        boolObject(a.Ctrl),
		"alt":         boolObject(a.Alt),
		"cmd":         boolObject(a.Cmd),
	}}
}

func axisObject(a bindings.InputAxis) tengo.Object {
	return &tengo.Map{Value: map[string]tengo.Object{
		"name":        &tengo.String{Value: a.AxisName},
		"key":         &tengo.String{Value: string(a.Key)},
		"key_display": &tengo.String{Value: a.KeyAsString()},
		"scale":       &tengo.Float{Value: float64(a.Scale)},
	}}
}

func actionsObject(list []bindings.InputAction) tengo.Object {
	out := make([]tengo.Object, 0, len(list))
	for _, a := range list {
		out = append(out, actionObject(a))
	}
	return &tengo.Array{Value: out}
}

func axesObject(list []bindings.InputAxis) tengo.Object {
	out := make([]tengo.Object, 0, len(list))
	for _, a := range list {
		out = append(out, axisObject(a))
	}
	return &tengo.Array{Value: out}
}

func objectFields(obj tengo.Object) (map[string]tengo.Object, bool) {
	switch v := obj.(type) {
	case *tengo.Map:
		return v.Value, true
	case *tengo.ImmutableMap:
		return v.Value, true
	default:
		return nil, false
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Undefined:
		return ""
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func fieldString(fields map[string]tengo.Object, name string) string {
	return strings.TrimSpace(objectAsString(fields[name]))
}

func fieldBool(fields map[string]tengo.Object, name string) bool {
	obj, ok := fields[name]
	if !ok {
		return false
	}
	return !obj.IsFalsy()
}

func fieldFloat(fields map[string]tengo.Object, name string, def float64) (float64, error) {
	obj, ok := fields[name]
	if !ok || obj == tengo.UndefinedValue {
		return def, nil
	}
	f, ok := tengo.ToFloat64(obj)
	if !ok {
		return 0, fmt.Errorf("%s: expected number, found %s", name, obj.TypeName())
	}
	return f, nil
}

// fieldKey returns the canonical spelling of a known key name and the name
// as written otherwise.
func fieldKey(fields map[string]tengo.Object, name string) input.Key {
	s := fieldString(fields, name)
	if k, err := input.ParseKey(s); err == nil {
		return k
	}
	return input.Key(s)
}

func fieldModifiers(fields map[string]tengo.Object) input.Modifiers {
	return input.Modifiers{
		Shift: fieldBool(fields, "shift"),
		Ctrl:  fieldBool(fields, "ctrl"),
		Alt:   fieldBool(fields, "alt"),
		Cmd:   fieldBool(fields, "cmd"),
	}
}

func toAction(arg string, obj tengo.Object) (bindings.InputAction, error) {
	fields, ok := objectFields(obj)
	if !ok {
		return bindings.InputAction{}, tengo.ErrInvalidArgumentType{Name: arg, Expected: "map", Found: obj.TypeName()}
	}
	return bindings.NewInputAction(fieldString(fields, "name"), fieldKey(fields, "key"), fieldModifiers(fields)), nil
}

func toAxis(arg string, obj tengo.Object) (bindings.InputAxis, error) {
	fields, ok := objectFields(obj)
	if !ok {
		return bindings.InputAxis{}, tengo.ErrInvalidArgumentType{Name: arg, Expected: "map", Found: obj.TypeName()}
	}
	scale, err := fieldFloat(fields, "scale", 1)
	if err != nil {
		return bindings.InputAxis{}, fmt.Errorf("%s: %w", arg, err)
	}
	return bindings.NewInputAxis(fieldString(fields, "name"), fieldKey(fields, "key"), float32(scale)), nil
}

func toKeyEvent(arg string, obj tengo.Object) (bindings.KeyEvent, error) {
	fields, ok := objectFields(obj)
	if !ok {
		return bindings.KeyEvent{}, tengo.ErrInvalidArgumentType{Name: arg, Expected: "map", Found: obj.TypeName()}
	}
	return bindings.KeyEvent{Key: fieldKey(fields, "key"), Modifiers: fieldModifiers(fields)}, nil
}

func toPointerEvent(arg string, obj tengo.Object) (bindings.PointerEvent, error) {
	fields, ok := objectFields(obj)
	if !ok {
		return bindings.PointerEvent{}, tengo.ErrInvalidArgumentType{Name: arg, Expected: "map", Found: obj.TypeName()}
	}
	dx, err := fieldFloat(fields, "dx", 0)
	if err != nil {
		return bindings.PointerEvent{}, fmt.Errorf("%s: %w", arg, err)
	}
	dy, err := fieldFloat(fields, "dy", 0)
	if err != nil {
		return bindings.PointerEvent{}, fmt.Errorf("%s: %w", arg, err)
	}
	return bindings.PointerEvent{
		Button:    fieldKey(fields, "button"),
		Modifiers: fieldModifiers(fields),
		DeltaX:    dx,
		DeltaY:    dy,
	}, nil
}
