package bindings_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
	"github.com/milk9111/keybindings/registry"
)

type countingConsumer struct{ n int }

func (c *countingConsumer) ForceRebuildKeyMaps() { c.n++ }

type fixture struct {
	store    *registry.MemoryStore
	registry *registry.Registry
	consumer *countingConsumer
	accessor *bindings.Accessor
}

func newFixture(t *testing.T, m registry.Mappings) *fixture {
	t.Helper()
	store := registry.NewMemoryStore(m)
	r, err := registry.Load(store)
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}
	c := &countingConsumer{}
	r.Subscribe(c)
	return &fixture{store: store, registry: r, consumer: c, accessor: bindings.NewAccessor(r)}
}

func (f *fixture) expectCommitted(t *testing.T, n int) {
	t.Helper()
	if f.store.Saves != n {
		t.Fatalf("expected %d saves, got %d", n, f.store.Saves)
	}
	if f.consumer.n != n {
		t.Fatalf("expected %d broadcasts, got %d", n, f.consumer.n)
	}
}

func axes() registry.Mappings {
	return registry.Mappings{
		Axes: []bindings.AxisMapping{
			{Name: "MoveRight", Key: "D", Scale: 1},
			{Name: "MoveRight", Key: "A", Scale: -1},
			{Name: "Strafe", Key: "A", Scale: -1},
			{Name: "MoveRight", Key: "D", Scale: 1},
		},
	}
}

func actions() registry.Mappings {
	return registry.Mappings{
		Actions: []bindings.ActionMapping{
			{Name: "Jump", Key: input.KeySpace},
			{Name: "Fire", Key: input.LeftMouseButton},
			{Name: "Use", Key: input.LeftMouseButton, Modifiers: input.Modifiers{Shift: true}},
			{Name: "Jump", Key: input.KeySpace},
		},
	}
}

func TestListBindingsPreservesOrder(t *testing.T) {
	f := newFixture(t, registry.Mappings{Actions: actions().Actions, Axes: axes().Axes})

	gotAxes := f.accessor.ListAxisBindings()
	if len(gotAxes) != 4 || gotAxes[2].AxisName != "Strafe" {
		t.Fatalf("unexpected axes: %+v", gotAxes)
	}
	gotActions := f.accessor.ListActionBindings()
	want := bindings.NewInputAction("Use", input.LeftMouseButton, input.Modifiers{Shift: true})
	if gotActions[2] != want {
		t.Fatalf("actions[2] = %+v, want %+v", gotActions[2], want)
	}
	if gotActions[2].KeyAsString() != "Left Mouse Button" {
		t.Fatalf("display = %q", gotActions[2].KeyAsString())
	}
	f.expectCommitted(t, 0)
}

func TestFindBindingsByName(t *testing.T) {
	f := newFixture(t, registry.Mappings{Actions: actions().Actions, Axes: axes().Axes})
	if got := f.accessor.FindAxisBindings("MoveRight"); len(got) != 3 {
		t.Fatalf("expected 3 MoveRight axes, got %d", len(got))
	}
	if got := f.accessor.FindActionBindings("Jump"); len(got) != 2 {
		t.Fatalf("expected 2 Jump actions, got %d", len(got))
	}
	if got := f.accessor.FindActionBindings("Nope"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestRebindAxis(t *testing.T) {
	cases := []struct {
		name     string
		current  bindings.InputAxis
		replace  bindings.InputAxis
		wantOK   bool
		wantAxes []bindings.AxisMapping
	}{
		{
			name:    "first_match_only",
			current: bindings.NewInputAxis("MoveRight", "D", 1),
			replace: bindings.NewInputAxis("ignored", "ArrowRight", 0.5),
			wantOK:  true,
			wantAxes: []bindings.AxisMapping{
				{Name: "MoveRight", Key: "ArrowRight", Scale: 0.5},
				{Name: "MoveRight", Key: "A", Scale: -1},
				{Name: "Strafe", Key: "A", Scale: -1},
				{Name: "MoveRight", Key: "D", Scale: 1},
			},
		},
		{
			name:     "name_must_match",
			current:  bindings.NewInputAxis("Strafe", "D", 1),
			replace:  bindings.NewInputAxis("", "Q", 1),
			wantOK:   false,
			wantAxes: axes().Axes,
		},
		{
			name:    "scale_of_current_is_ignored",
			current: bindings.NewInputAxis("Strafe", "A", 7),
			replace: bindings.NewInputAxis("", "Q", -1),
			wantOK:  true,
			wantAxes: []bindings.AxisMapping{
				{Name: "MoveRight", Key: "D", Scale: 1},
				{Name: "MoveRight", Key: "A", Scale: -1},
				{Name: "Strafe", Key: "Q", Scale: -1},
				{Name: "MoveRight", Key: "D", Scale: 1},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, axes())
			if got := f.accessor.RebindAxis(c.current, c.replace); got != c.wantOK {
				t.Fatalf("RebindAxis = %v, want %v", got, c.wantOK)
			}
			if diff := cmp.Diff(c.wantAxes, f.registry.AxisMappings()); diff != "" {
				t.Fatalf("axes mismatch (-want +got):\n%s", diff)
			}
			if c.wantOK {
				f.expectCommitted(t, 1)
			} else {
				f.expectCommitted(t, 0)
			}
		})
	}
}

func TestRebindAxisPropertyEveryEntry(t *testing.T) {
	base := axes().Axes
	for i, entry := range base {
		f := newFixture(t, axes())
		b := bindings.NewInputAxis("", "Z", -2)
		if !f.accessor.RebindAxis(bindings.AxisFromMapping(entry), b) {
			t.Fatalf("entry %d: rebind failed", i)
		}
		got := f.accessor.ListAxisBindings()
		if len(got) != len(base) {
			t.Fatalf("entry %d: size changed to %d", i, len(got))
		}
		first := -1
		for j, m := range base {
			if m.Name == entry.Name && m.Key == entry.Key {
				first = j
				break
			}
		}
		if got[first].Key != "Z" || got[first].Scale != -2 || got[first].AxisName != entry.Name {
			t.Fatalf("entry %d: position %d = %+v", i, first, got[first])
		}
	}
}

func TestRebindAction(t *testing.T) {
	f := newFixture(t, actions())
	replacement := bindings.NewInputAction("ignored", "W", input.Modifiers{Alt: true, Cmd: true})

	if !f.accessor.RebindAction(bindings.NewInputAction("Jump", input.KeySpace, input.Modifiers{}), replacement) {
		t.Fatalf("RebindAction failed")
	}
	got := f.registry.ActionMappings()
	want := bindings.ActionMapping{Name: "Jump", Key: "W", Modifiers: input.Modifiers{Alt: true, Cmd: true}}
	if got[0] != want {
		t.Fatalf("actions[0] = %+v, want %+v", got[0], want)
	}
	if got[3].Key != input.KeySpace {
		t.Fatalf("duplicate should not be rebound: %+v", got[3])
	}
	f.expectCommitted(t, 1)

	if f.accessor.RebindAction(bindings.NewInputAction("Fire", "X", input.Modifiers{}), replacement) {
		t.Fatalf("expected no match")
	}
	f.expectCommitted(t, 1)
}

func TestEmptyRegistryFailures(t *testing.T) {
	f := newFixture(t, registry.Mappings{})
	a := bindings.NewInputAction("Jump", input.KeySpace, input.Modifiers{})

	if f.accessor.RebindAction(a, a) {
		t.Fatalf("RebindAction on empty registry succeeded")
	}
	if f.accessor.RemoveActionBinding(a) {
		t.Fatalf("RemoveActionBinding on empty registry succeeded")
	}
	if f.accessor.RebindAxis(bindings.NewInputAxis("X", "A", 1), bindings.NewInputAxis("X", "B", 1)) {
		t.Fatalf("RebindAxis on empty registry succeeded")
	}
	if f.accessor.RemoveAxisBinding(bindings.NewInputAxis("X", "A", 1)) {
		t.Fatalf("RemoveAxisBinding on empty registry succeeded")
	}
	if len(f.accessor.ListActionBindings()) != 0 || len(f.accessor.ListAxisBindings()) != 0 {
		t.Fatalf("registry should stay empty")
	}
	f.expectCommitted(t, 0)
}

func TestAddAxisBinding(t *testing.T) {
	f := newFixture(t, axes())
	owner := bindings.NewInputAxis("Turn", "ignored", 9)
	added := bindings.NewInputAxis("", input.MouseX, 1)

	if !f.accessor.AddAxisBinding(added, owner) {
		t.Fatalf("AddAxisBinding failed")
	}
	if !f.accessor.AddAxisBinding(added, owner) {
		t.Fatalf("re-adding an existing non-first entry reports its index")
	}

	count := 0
	for _, m := range f.registry.AxisMappings() {
		if m == (bindings.AxisMapping{Name: "Turn", Key: input.MouseX, Scale: 1}) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Turn/MouseX entry, got %d", count)
	}
	if n := len(f.registry.AxisMappings()); n != 5 {
		t.Fatalf("expected 5 axes, got %d", n)
	}

	if !f.accessor.AddAxisBinding(bindings.NewInputAxis("", input.MouseX, -1), owner) {
		t.Fatalf("different scale is a different entry")
	}
	if n := len(f.registry.AxisMappings()); n != 6 {
		t.Fatalf("expected 6 axes, got %d", n)
	}
}

func TestAddBindingFirstEntryQuirk(t *testing.T) {
	f := newFixture(t, registry.Mappings{})
	owner := bindings.NewInputAction("Jump", "", input.Modifiers{})

	if f.accessor.AddActionBinding(bindings.NewInputAction("", input.KeySpace, input.Modifiers{}), owner) {
		t.Fatalf("an entry landing at index 0 reports failure")
	}
	if got := f.registry.ActionMappings(); len(got) != 1 || got[0].Name != "Jump" {
		t.Fatalf("entry should still be in memory: %+v", got)
	}
	f.expectCommitted(t, 0)

	if !f.accessor.AddActionBinding(bindings.NewInputAction("", "W", input.Modifiers{Shift: true}), owner) {
		t.Fatalf("second entry should succeed")
	}
	f.expectCommitted(t, 1)
	if len(f.store.Mappings.Actions) != 2 {
		t.Fatalf("both entries should be persisted, got %+v", f.store.Mappings.Actions)
	}

	fa := newFixture(t, registry.Mappings{})
	if fa.accessor.AddAxisBinding(bindings.NewInputAxis("", "D", 1), bindings.NewInputAxis("MoveRight", "", 0)) {
		t.Fatalf("axis entry landing at index 0 reports failure")
	}
	fa.expectCommitted(t, 0)
}

func TestAddActionBindingUsesFullTuple(t *testing.T) {
	f := newFixture(t, actions())
	owner := bindings.NewInputAction("Fire", "", input.Modifiers{})

	if !f.accessor.AddActionBinding(bindings.NewInputAction("", input.LeftMouseButton, input.Modifiers{}), owner) {
		t.Fatalf("existing tuple at index 1 reports success")
	}
	if n := len(f.registry.ActionMappings()); n != 4 {
		t.Fatalf("existing tuple should not be appended, have %d", n)
	}
	if !f.accessor.AddActionBinding(bindings.NewInputAction("", input.LeftMouseButton, input.Modifiers{Ctrl: true}), owner) {
		t.Fatalf("AddActionBinding failed")
	}
	if n := len(f.registry.ActionMappings()); n != 5 {
		t.Fatalf("different modifiers should append, have %d", n)
	}
}

func TestRemoveAxisBindingPurgesKey(t *testing.T) {
	f := newFixture(t, axes())
	if !f.accessor.RemoveAxisBinding(bindings.NewInputAxis("Unrelated", "A", 5)) {
		t.Fatalf("RemoveAxisBinding failed")
	}
	for _, m := range f.registry.AxisMappings() {
		if m.Key == "A" {
			t.Fatalf("entry with removed key remains: %+v", m)
		}
	}
	if n := len(f.registry.AxisMappings()); n != 2 {
		t.Fatalf("expected 2 axes left, got %d", n)
	}
	f.expectCommitted(t, 1)

	if f.accessor.RemoveAxisBinding(bindings.NewInputAxis("", "A", 1)) {
		t.Fatalf("second purge should find nothing")
	}
	f.expectCommitted(t, 1)
}

func TestRemoveActionBindingPurgesKey(t *testing.T) {
	f := newFixture(t, actions())
	if !f.accessor.RemoveActionBinding(bindings.NewInputAction("", input.LeftMouseButton, input.Modifiers{})) {
		t.Fatalf("RemoveActionBinding failed")
	}
	want := []bindings.ActionMapping{
		{Name: "Jump", Key: input.KeySpace},
		{Name: "Jump", Key: input.KeySpace},
	}
	if diff := cmp.Diff(want, f.registry.ActionMappings()); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
	f.expectCommitted(t, 1)
}

func TestUnavailableRegistry(t *testing.T) {
	a := bindings.NewAccessor(nil)
	if a.Available() {
		t.Fatalf("accessor without registry reports available")
	}
	if got := a.ListActionBindings(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	if got := a.ListAxisBindings(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	act := bindings.NewInputAction("Jump", input.KeySpace, input.Modifiers{})
	ax := bindings.NewInputAxis("MoveRight", "D", 1)
	results := []bool{
		a.RebindAction(act, act),
		a.RebindAxis(ax, ax),
		a.AddActionBinding(act, act),
		a.AddAxisBinding(ax, ax),
		a.RemoveActionBinding(act),
		a.RemoveAxisBinding(ax),
	}
	for i, ok := range results {
		if ok {
			t.Fatalf("operation %d succeeded without a registry", i)
		}
	}

	var nilAccessor *bindings.Accessor
	if nilAccessor.Available() {
		t.Fatalf("nil accessor reports available")
	}

	f := newFixture(t, axes())
	a.SetRepository(f.registry)
	if !a.RemoveAxisBinding(ax) {
		t.Fatalf("attached registry should be usable")
	}
}

func TestPersistFailureIsLoggedAndBroadcast(t *testing.T) {
	f := newFixture(t, axes())
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a := bindings.NewAccessor(f.registry, bindings.WithLogger(logger))

	f.store.Err = errors.New("read-only filesystem")
	if !a.RemoveAxisBinding(bindings.NewInputAxis("", "D", 1)) {
		t.Fatalf("in-memory mutation should still report success")
	}
	if f.consumer.n != 1 {
		t.Fatalf("consumers should rebuild after a failed write, got %d", f.consumer.n)
	}
	if !strings.Contains(buf.String(), "read-only filesystem") || !strings.Contains(buf.String(), "remove_axis") {
		t.Fatalf("expected persist failure in log, got %q", buf.String())
	}
}

func TestPersistErrReportsLastMutation(t *testing.T) {
	f := newFixture(t, axes())
	a := bindings.NewAccessor(f.registry, bindings.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	diskFull := errors.New("disk full")
	f.store.Err = diskFull
	if !a.RemoveAxisBinding(bindings.NewInputAxis("", "D", 1)) {
		t.Fatalf("remove should succeed in memory")
	}
	if !errors.Is(a.PersistErr(), diskFull) {
		t.Fatalf("expected the store error, got %v", a.PersistErr())
	}

	if a.RemoveAxisBinding(bindings.NewInputAxis("", "Q", 1)) {
		t.Fatalf("nothing is bound to Q")
	}
	if !errors.Is(a.PersistErr(), diskFull) {
		t.Fatalf("a failed mutation should leave PersistErr alone, got %v", a.PersistErr())
	}

	f.store.Err = nil
	if !a.RemoveAxisBinding(bindings.NewInputAxis("", "A", -1)) {
		t.Fatalf("remove should succeed")
	}
	if err := a.PersistErr(); err != nil {
		t.Fatalf("successful write should clear PersistErr, got %v", err)
	}
	if f.store.Saves != 1 {
		t.Fatalf("expected one save, got %d", f.store.Saves)
	}
}
