package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/registry"
	"github.com/milk9111/keybindings/script"
)

func main() {
	configPath := flag.String("config", "", "bindings file (default: per-user config for -game)")
	game := flag.String("game", "sidescroller", "game name used for the default config path")
	startup := flag.String("script", "", "tengo script to run against the bindings before the window opens")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	path := *configPath
	if path == "" {
		p, err := registry.DefaultPath(*game)
		if err != nil {
			log.Fatal(err)
		}
		path = p
	}

	reg, err := registry.Load(registry.NewFileStore(path))
	if err != nil {
		log.Fatal(err)
	}
	accessor := bindings.NewAccessor(reg)

	if *startup != "" {
		if _, err := script.NewRunner(accessor, nil).RunFile(context.Background(), *startup, nil); err != nil {
			log.Fatal(err)
		}
	}

	watcher, err := registry.NewWatcher(path)
	if err != nil {
		log.Printf("not watching %s: %v", path, err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bindings - " + path)

	g := NewGame(reg, accessor, watcher)
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
