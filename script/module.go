package script

import (
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
)

// ModuleName is the import name scripts use: kb := import("keybindings").
const ModuleName = "keybindings"

type (
	actionPair func(a, b bindings.InputAction) bool
	axisPair   func(a, b bindings.InputAxis) bool
)

// Module returns the attributes of the keybindings module bound to a.
func Module(a *bindings.Accessor) map[string]tengo.Object {
	values := map[string]tengo.Object{}

	values["list_actions"] = &tengo.UserFunction{Name: "list_actions", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return actionsObject(a.ListActionBindings()), nil
	}}
	values["list_axes"] = &tengo.UserFunction{Name: "list_axes", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return axesObject(a.ListAxisBindings()), nil
	}}
	values["find_actions"] = &tengo.UserFunction{Name: "find_actions", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return actionsObject(a.FindActionBindings(objectAsString(args[0]))), nil
	}}
	values["find_axes"] = &tengo.UserFunction{Name: "find_axes", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return axesObject(a.FindAxisBindings(objectAsString(args[0]))), nil
	}}

	values["rebind_action"] = actionPairFunc("rebind_action", a.RebindAction)
	values["add_action"] = actionPairFunc("add_action", a.AddActionBinding)
	values["rebind_axis"] = axisPairFunc("rebind_axis", a.RebindAxis)
	values["add_axis"] = axisPairFunc("add_axis", a.AddAxisBinding)

	values["remove_action"] = &tengo.UserFunction{Name: "remove_action", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := toAction("first", args[0])
		if err != nil {
			return nil, err
		}
		return boolObject(a.RemoveActionBinding(target)), nil
	}}
	values["remove_axis"] = &tengo.UserFunction{Name: "remove_axis", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := toAxis("first", args[0])
		if err != nil {
			return nil, err
		}
		return boolObject(a.RemoveAxisBinding(target)), nil
	}}

	values["action_from_key"] = &tengo.UserFunction{Name: "action_from_key", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		ev, err := toKeyEvent("first", args[0])
		if err != nil {
			return nil, err
		}
		return actionObject(bindings.ActionFromKeyEvent(ev)), nil
	}}
	values["axis_from_key"] = &tengo.UserFunction{Name: "axis_from_key", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		ev, err := toKeyEvent("first", args[0])
		if err != nil {
			return nil, err
		}
		return axisObject(bindings.AxisFromKeyEvent(ev)), nil
	}}
	values["action_from_pointer"] = &tengo.UserFunction{Name: "action_from_pointer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		ev, err := toPointerEvent("first", args[0])
		if err != nil {
			return nil, err
		}
		return actionObject(bindings.ActionFromPointerEvent(ev)), nil
	}}
	values["axis_from_pointer_button"] = &tengo.UserFunction{Name: "axis_from_pointer_button", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		ev, err := toPointerEvent("first", args[0])
		if err != nil {
			return nil, err
		}
		return axisObject(bindings.AxisFromPointerButtonEvent(ev)), nil
	}}
	values["axis_from_pointer_motion"] = &tengo.UserFunction{Name: "axis_from_pointer_motion", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		ev, err := toPointerEvent("first", args[0])
		if err != nil {
			return nil, err
		}
		return axisObject(bindings.AxisFromPointerMotionEvent(ev)), nil
	}}

	values["display_name"] = &tengo.UserFunction{Name: "display_name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return &tengo.String{Value: input.Key(objectAsString(args[0])).DisplayName()}, nil
	}}

	return values
}

func actionPairFunc(name string, op actionPair) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		first, err := toAction("first", args[0])
		if err != nil {
			return nil, err
		}
		second, err := toAction("second", args[1])
		if err != nil {
			return nil, err
		}
		return boolObject(op(first, second)), nil
	}}
}

func axisPairFunc(name string, op axisPair) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		first, err := toAxis("first", args[0])
		if err != nil {
			return nil, err
		}
		second, err := toAxis("second", args[1])
		if err != nil {
			return nil, err
		}
		return boolObject(op(first, second)), nil
	}}
}

// Modules returns the tengo standard library plus the keybindings module.
func Modules(a *bindings.Accessor) *tengo.ModuleMap {
	modules := stdlib.GetModuleMap(stdlib.AllModuleNames()...)
	modules.AddBuiltinModule(ModuleName, Module(a))
	return modules
}
