// Package input names physical inputs independently of the windowing backend.
//
// Key values are strings so they can be written to config files and passed to
// scripts unchanged. Keyboard keys use the spelling of ebiten.Key.String;
// mouse buttons, gamepad buttons and the synthetic axis keys MouseX, MouseY and
// MouseWheelAxis are defined here. The poll subpackage converts ebiten input
// into these names.
package input
