package testing

import (
	"testing"

	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/host"
	"github.com/go-drift/rosetta/pkg/ui"
)

type settings struct {
	Speed int
	Name  string
	Tags  []string
}

type holder struct {
	Inner *settings
}

type drone struct {
	host.Lifetime
	Name string
}

func TestUITester_EditWritesThrough(t *testing.T) {
	tester := NewUITesterWithT(t)
	s := &settings{Speed: 1}
	if err := tester.Mount(ui.Column(
		ui.Field[int](s, "Speed"),
		ui.Field[string](s, "Name"),
	)); err != nil {
		t.Fatal(err)
	}

	if err := tester.Widget(ByText("Speed")).Edit(7); err != nil {
		t.Fatal(err)
	}
	if s.Speed != 7 {
		t.Errorf("Speed = %d, want 7", s.Speed)
	}

	s.Name = "ada"
	tester.Pump()
	if got := tester.Widget(ByText("Name")).Value; got != "ada" {
		t.Errorf("Name view = %v, want ada", got)
	}
}

func TestUITester_RemountDestroysPrevious(t *testing.T) {
	tester := NewUITesterWithT(t)
	s := &settings{}
	first := ui.Column(ui.Field[int](s, "Speed"))
	if err := tester.Mount(first); err != nil {
		t.Fatal(err)
	}
	old := tester.RootWidget()

	if err := tester.Mount(ui.Column(ui.Field[string](s, "Name"))); err != nil {
		t.Fatal(err)
	}
	if !first.IsDestroyed() {
		t.Error("previous root should be destroyed")
	}
	if !old.Disposed {
		t.Error("previous root view should be disposed")
	}
	if tester.Find(ByText("Speed")).Exists() {
		t.Error("old field still found")
	}
}

func TestUITester_ListClicks(t *testing.T) {
	tester := NewUITesterWithT(t)
	s := &settings{Tags: []string{"a"}}
	if err := tester.Mount(ui.List("Tags", &s.Tags)); err != nil {
		t.Fatal(err)
	}

	tester.Widget(ByType[*element.ListView]()).Click()
	tester.Pump()
	if len(s.Tags) != 2 {
		t.Fatalf("Tags = %v, want 2 items", s.Tags)
	}
	if n := tester.Find(ByType[*element.ListItem]()).Count(); n != 2 {
		t.Errorf("items = %d, want 2", n)
	}

	tester.Widget(ByType[*element.ListItem]()).Click()
	tester.Pump()
	if len(s.Tags) != 1 || s.Tags[0] != "" {
		t.Errorf("Tags = %q, want [\"\"]", s.Tags)
	}
}

func TestUITester_RecordsBindingErrors(t *testing.T) {
	tester := NewUITesterWithT(t)
	h := &holder{}
	if err := tester.Mount(ui.Column(ui.Field[int](h, "Inner.Speed"))); err != nil {
		t.Fatal(err)
	}
	tester.PumpN(3)

	reported := tester.Errors().Reported()
	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	if reported[0].Kind != errors.KindBinding {
		t.Errorf("kind = %s, want binding", reported[0].Kind)
	}
	if tester.Find(Enabled(ByText("Speed"))).Exists() {
		t.Error("unreachable field should be hidden")
	}

	h.Inner = &settings{Speed: 4}
	tester.Pump()
	if !tester.Find(Enabled(ByText("Speed"))).Exists() {
		t.Error("field should be shown once reachable")
	}
	if got := tester.Widget(ByText("Speed")).Value; got != 4 {
		t.Errorf("Speed view = %v, want 4", got)
	}
}

func TestUITester_FindObjectWithClock(t *testing.T) {
	tester := NewUITesterWithT(t)
	reg := host.NewRegistry()
	p := &drone{Name: "ada"}
	reg.Add(p)
	if err := tester.Mount(ui.DynamicElementFindObject(reg, func(p *drone) element.Element {
		return ui.Field[string](p, "Name")
	})); err != nil {
		t.Fatal(err)
	}
	if tester.Find(ByText("Name")).Exists() {
		t.Fatal("lookup should wait for the polling interval")
	}

	_, max := ui.FindInterval()
	tester.Clock().Advance(max)
	tester.Pump()
	if got := tester.Widget(ByText("Name")).Value; got != "ada" {
		t.Errorf("Name view = %v, want ada", got)
	}

	p.Destroy()
	tester.Pump()
	if tester.Find(ByText("Name")).Exists() {
		t.Error("destroyed object should drop its element")
	}
}

func TestUITester_CleanupRestoresHandler(t *testing.T) {
	prev := errors.DefaultHandler
	tester := NewUITester()
	if errors.DefaultHandler == prev {
		t.Fatal("tester should install its own handler")
	}
	tester.Cleanup()
	if errors.DefaultHandler != prev {
		t.Error("handler not restored")
	}
}

func TestUITester_WidgetPanicsWithoutMatch(t *testing.T) {
	tester := NewUITesterWithT(t)
	if err := tester.Mount(ui.Column()); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	tester.Widget(ByText("missing"))
}
