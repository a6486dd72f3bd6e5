// Package poll reads keyboard, mouse and gamepad state from ebiten and
// reports it using the names from package input.
package poll
