package main

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input/poll"
	"github.com/milk9111/keybindings/player"
	"github.com/milk9111/keybindings/registry"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Game shows every binding as a button. Clicking one waits for the next
// input and rebinds it; the bottom of the screen shows which actions and
// axes the current bindings report as live.
type Game struct {
	frames int

	device   *poll.Device
	registry *registry.Registry
	accessor *bindings.Accessor
	input    *player.Input
	watcher  *registry.Watcher
	sub      *registry.Subscription

	ui      *ebitenui.UI
	status  string
	capture *bindings.Capture
	dirty   bool
}

func NewGame(reg *registry.Registry, accessor *bindings.Accessor, watcher *registry.Watcher) *Game {
	g := &Game{
		device:   poll.NewDevice(),
		registry: reg,
		accessor: accessor,
		input:    player.New(reg),
		watcher:  watcher,
		status:   "click a binding to change it",
	}
	g.sub = reg.Subscribe(registry.ConsumerFunc(func() { g.dirty = true }))
	g.ui = NewBindingsUI(g)
	return g
}

func (g *Game) Close() {
	g.sub.Unsubscribe()
	g.input.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("closing watcher: %v", err)
		}
	}
}

func (g *Game) startCapture(c *bindings.Capture, label string) {
	g.capture = c
	g.status = fmt.Sprintf("press a new input for %s (escape cancels)", label)
}

func (g *Game) Update() error {
	g.frames++
	g.device.Update()

	if g.watcher != nil {
		if err := g.watcher.Drain(g.registry); err != nil {
			log.Printf("reloading bindings: %v", err)
		}
	}

	if g.capture != nil {
		done, rebound := g.capture.Offer(g.accessor, g.device.Modifiers(), g.device.KeyEvents(), g.device.PointerEvents())
		if done {
			switch {
			case rebound:
				g.status = "rebound " + g.capture.Name()
			default:
				g.status = "cancelled"
			}
			g.capture = nil
		}
		return nil
	}

	g.input.Update(g.device)

	if g.dirty {
		g.ui = NewBindingsUI(g)
		g.dirty = false
	}
	g.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ui.Draw(screen)

	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f    rebuilds: %d\n%s\n\n", ebiten.ActualFPS(), g.input.Rebuilds(), g.status)
	for _, name := range g.actionNames() {
		if g.input.ActionPressed(name) {
			fmt.Fprintf(&b, "%s ", name)
		}
	}
	b.WriteString("\n")
	for _, name := range g.axisNames() {
		if v := g.input.AxisValue(name); v != 0 {
			fmt.Fprintf(&b, "%s=%.2f ", name, v)
		}
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, baseHeight-80)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) actionNames() []string {
	var names []string
	for _, m := range g.registry.ActionMappings() {
		names = append(names, m.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func (g *Game) axisNames() []string {
	var names []string
	for _, m := range g.registry.AxisMappings() {
		names = append(names, m.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
