package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/registry"
)

const usage = `usage: bindings [flags] <command> [args]

commands:
  list                                   print every binding
  rebind-action -name N -from K -to K    rebind the first N/K action
  rebind-axis -name N -from K -to K      rebind the first N/K axis
  add-action -name N -key K              add an action binding
  add-axis -name N -key K -scale S       add an axis binding
  remove-action -key K                   remove every action bound to K
  remove-axis -key K                     remove every axis bound to K
  run script.tengo                       run a script with the keybindings module
  watch                                  print the bindings whenever the file changes
  export [-clip]                         print the bindings file, optionally to the clipboard
  reset                                  overwrite the file with the defaults

flags:
`

func main() {
	configPath := flag.String("config", "", "bindings file (default: per-user config for -game)")
	game := flag.String("game", "sidescroller", "game name used for the default config path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := *configPath
	if path == "" {
		p, err := registry.DefaultPath(*game)
		if err != nil {
			log.Fatal(err)
		}
		path = p
	}

	store := registry.NewFileStore(path)
	reg, err := registry.Load(store, registry.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	app := &app{
		store:    store,
		registry: reg,
		accessor: bindings.NewAccessor(reg, bindings.WithLogger(logger)),
		logger:   logger,
		out:      os.Stdout,
	}
	if err := app.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatal(err)
	}
}
