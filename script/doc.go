// Package script exposes binding editing to tengo scripts.
//
// Scripts import the module with
//
//	kb := import("keybindings")
//
// Action records are maps with name, key, key_display, shift, ctrl, alt and
// cmd. Axis records carry name, key, key_display and scale. Pointer events
// passed to the translator functions are maps with button, dx, dy and the
// modifier flags; key events have key and the modifier flags. The mutating
// functions return the same booleans as bindings.Accessor.
package script
