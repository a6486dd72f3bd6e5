// Package bindings edits a game's action and axis bindings.
//
// Two shapes of the same data exist. ActionMapping and AxisMapping are what
// the registry stores and writes to disk. InputAction and InputAxis are the
// records handed to scripts and UI, with a display string derived from the
// key. The translator functions turn captured input events into those records
// and the Accessor applies them to a Repository.
package bindings
