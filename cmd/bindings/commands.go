package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
	"github.com/milk9111/keybindings/registry"
	"github.com/milk9111/keybindings/script"
	"golang.design/x/clipboard"
)

var errNotChanged = errors.New("no binding changed")

type app struct {
	store    *registry.FileStore
	registry *registry.Registry
	accessor *bindings.Accessor
	logger   *slog.Logger
	out      io.Writer

	// copyToClipboard is replaced in tests. The returned channel fires once
	// another program takes the clipboard over.
	copyToClipboard func([]byte) (<-chan struct{}, error)
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.list()
	case "rebind-action":
		return a.rebindAction(args)
	case "rebind-axis":
		return a.rebindAxis(args)
	case "add-action":
		return a.addAction(args)
	case "add-axis":
		return a.addAxis(args)
	case "remove-action":
		return a.removeAction(args)
	case "remove-axis":
		return a.removeAxis(args)
	case "run":
		return a.runScript(args)
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return a.watch(ctx)
	case "export":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return a.export(ctx, args)
	case "reset":
		return a.reset()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) list() error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tKEY\tDISPLAY")
	for _, b := range a.accessor.ListActionBindings() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ActionName, b.Key, input.Chord(b.Modifiers, b.Key))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "AXIS\tKEY\tSCALE")
	for _, b := range a.accessor.ListAxisBindings() {
		fmt.Fprintf(tw, "%s\t%s\t%g\n", b.AxisName, b.Key, b.Scale)
	}
	return tw.Flush()
}

type modifierFlags struct {
	shift, ctrl, alt, cmd *bool
}

func addModifierFlags(fs *flag.FlagSet) modifierFlags {
	return modifierFlags{
		shift: fs.Bool("shift", false, "require shift"),
		ctrl:  fs.Bool("ctrl", false, "require control"),
		alt:   fs.Bool("alt", false, "require alt"),
		cmd:   fs.Bool("cmd", false, "require command/meta"),
	}
}

func (m modifierFlags) value() input.Modifiers {
	return input.Modifiers{Shift: *m.shift, Ctrl: *m.ctrl, Alt: *m.alt, Cmd: *m.cmd}
}

func parseKeyFlag(name, value string) (input.Key, error) {
	if value == "" {
		return input.None, fmt.Errorf("-%s is required", name)
	}
	return input.ParseKey(value)
}

// result turns an accessor outcome into the command's error. A change that
// could not be written to the file is an error even though the in-memory
// registry accepted it.
func (a *app) result(ok bool) error {
	if !ok {
		return errNotChanged
	}
	return a.accessor.PersistErr()
}

func (a *app) rebindAction(args []string) error {
	fs := flag.NewFlagSet("rebind-action", flag.ContinueOnError)
	name := fs.String("name", "", "action name")
	from := fs.String("from", "", "currently bound key")
	to := fs.String("to", "", "new key")
	mods := addModifierFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	fromKey, err := parseKeyFlag("from", *from)
	if err != nil {
		return err
	}
	toKey, err := parseKeyFlag("to", *to)
	if err != nil {
		return err
	}
	return a.result(a.accessor.RebindAction(
		bindings.NewInputAction(*name, fromKey, input.Modifiers{}),
		bindings.NewInputAction(*name, toKey, mods.value()),
	))
}

func (a *app) rebindAxis(args []string) error {
	fs := flag.NewFlagSet("rebind-axis", flag.ContinueOnError)
	name := fs.String("name", "", "axis name")
	from := fs.String("from", "", "currently bound key")
	to := fs.String("to", "", "new key")
	scale := fs.Float64("scale", 1, "new scale (default: keep the current scale)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fromKey, err := parseKeyFlag("from", *from)
	if err != nil {
		return err
	}
	toKey, err := parseKeyFlag("to", *to)
	if err != nil {
		return err
	}
	current := bindings.NewInputAxis(*name, fromKey, 0)
	newScale := float32(*scale)
	if !flagSet(fs, "scale") {
		b, ok := a.findAxis(current)
		if !ok {
			return errNotChanged
		}
		newScale = b.Scale
	}
	return a.result(a.accessor.RebindAxis(current, bindings.NewInputAxis(*name, toKey, newScale)))
}

// findAxis returns the first binding RebindAxis would match for current.
func (a *app) findAxis(current bindings.InputAxis) (bindings.InputAxis, bool) {
	for _, b := range a.accessor.FindAxisBindings(current.AxisName) {
		if b.Key == current.Key {
			return b, true
		}
	}
	return bindings.InputAxis{}, false
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func (a *app) addAction(args []string) error {
	fs := flag.NewFlagSet("add-action", flag.ContinueOnError)
	name := fs.String("name", "", "action name")
	key := fs.String("key", "", "key to bind")
	mods := addModifierFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := parseKeyFlag("key", *key)
	if err != nil {
		return err
	}
	if *name == "" {
		return errors.New("-name is required")
	}
	return a.result(a.accessor.AddActionBinding(
		bindings.NewInputAction("", k, mods.value()),
		bindings.NewInputAction(*name, input.None, input.Modifiers{}),
	))
}

func (a *app) addAxis(args []string) error {
	fs := flag.NewFlagSet("add-axis", flag.ContinueOnError)
	name := fs.String("name", "", "axis name")
	key := fs.String("key", "", "key to bind")
	scale := fs.Float64("scale", 1, "scale applied to the key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := parseKeyFlag("key", *key)
	if err != nil {
		return err
	}
	if *name == "" {
		return errors.New("-name is required")
	}
	return a.result(a.accessor.AddAxisBinding(
		bindings.NewInputAxis("", k, float32(*scale)),
		bindings.NewInputAxis(*name, input.None, 0),
	))
}

func (a *app) removeAction(args []string) error {
	fs := flag.NewFlagSet("remove-action", flag.ContinueOnError)
	key := fs.String("key", "", "key to unbind")
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := parseKeyFlag("key", *key)
	if err != nil {
		return err
	}
	return a.result(a.accessor.RemoveActionBinding(bindings.NewInputAction("", k, input.Modifiers{})))
}

func (a *app) removeAxis(args []string) error {
	fs := flag.NewFlagSet("remove-axis", flag.ContinueOnError)
	key := fs.String("key", "", "key to unbind")
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := parseKeyFlag("key", *key)
	if err != nil {
		return err
	}
	return a.result(a.accessor.RemoveAxisBinding(bindings.NewInputAxis("", k, 0)))
}

func (a *app) runScript(args []string) error {
	if len(args) != 1 {
		return errors.New("run: expected one script path")
	}
	runner := script.NewRunner(a.accessor, a.logger)
	_, err := runner.RunFile(context.Background(), args[0], nil)
	return err
}

func (a *app) watch(ctx context.Context) error {
	w, err := registry.NewWatcher(a.store.Path())
	if err != nil {
		return err
	}
	defer w.Close()

	a.registry.Subscribe(registry.ConsumerFunc(func() {
		a.logger.Info("bindings changed", "path", a.store.Path())
		if err := a.list(); err != nil {
			a.logger.Error("list failed", "err", err)
		}
	}))

	a.logger.Info("watching", "path", a.store.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := a.registry.Reload(); err != nil {
				a.logger.Error("reload failed", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watch error", "err", err)
		}
	}
}

// export prints the bindings document or puts it on the clipboard. On X11
// the clipboard is served by its owner, so with -clip the command stays up
// until another program takes the clipboard, -hold elapses or it is
// interrupted.
func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	clip := fs.Bool("clip", false, "copy to the clipboard instead of printing")
	hold := fs.Duration("hold", 0, "with -clip, how long to serve the clipboard (0: until overwritten or interrupted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := registry.Encode(a.registry.Snapshot())
	if err != nil {
		return err
	}
	if !*clip {
		_, err := a.out.Write(data)
		return err
	}
	copyFn := a.copyToClipboard
	if copyFn == nil {
		copyFn = writeClipboard
	}
	overwritten, err := copyFn(data)
	if err != nil {
		return fmt.Errorf("export: clipboard: %w", err)
	}
	a.logger.Info("copied bindings to clipboard, holding until it is overwritten", "bytes", len(data))

	if *hold > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *hold)
		defer cancel()
	}
	select {
	case <-overwritten:
		a.logger.Debug("clipboard taken by another program")
	case <-ctx.Done():
	}
	return nil
}

func writeClipboard(data []byte) (<-chan struct{}, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return clipboard.Write(clipboard.FmtText, data), nil
}

func (a *app) reset() error {
	m, err := registry.Defaults()
	if err != nil {
		return err
	}
	if err := a.store.Save(m); err != nil {
		return err
	}
	return a.registry.Reload()
}
