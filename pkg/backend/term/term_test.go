package term

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
)

type state struct {
	On    bool
	Level int `range:"0,10"`
	Name  string
}

func newTestModel(t *testing.T, s *state) *Model {
	t.Helper()
	root := element.NewColumn(
		element.CreateFieldElement(element.NewLabel("On"), binding.MustField[bool](s, "On")),
		element.CreateSliderElement(element.NewLabel("Level"), binding.MustField[int](s, "Level"), nil, nil),
		element.CreateFieldElement(element.NewLabel("Name"), binding.MustField[string](s, "Name")),
	)
	m, err := NewModel(root, Options{Width: 60})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestKeysEditFocusedNode(t *testing.T) {
	s := &state{Level: 5}
	m := newTestModel(t, s)

	m.handleKey(" ")
	if !s.On {
		t.Error("space should toggle the focused bool")
	}

	m.handleKey("down")
	m.handleKey("+")
	m.handleKey("+")
	if s.Level != 7 {
		t.Errorf("Level = %d, want 7", s.Level)
	}
	for range 10 {
		m.handleKey("+")
	}
	if s.Level != 10 {
		t.Errorf("Level = %d, want clamped to 10", s.Level)
	}

	m.handleKey("down")
	m.handleKey("h")
	m.handleKey("i")
	m.handleKey("backspace")
	if s.Name != "h" {
		t.Errorf("Name = %q, want %q", s.Name, "h")
	}
}

func TestTickPushesHostChanges(t *testing.T) {
	s := &state{}
	m := newTestModel(t, s)
	s.Level = 3
	m.Update(tickMsg{})
	view := m.View()
	if !strings.Contains(view, "Level") || !strings.Contains(view, " 3") {
		t.Errorf("view does not show the new level:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, &state{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestClosedFoldHidesChildren(t *testing.T) {
	values := []int{1, 2}
	fold := element.CreateListElement(element.NewLabel("Values"), binding.List[int](binding.Ptr(&values)), nil)
	m, err := NewModel(fold, Options{})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if n := len(lines(m.Root())); n != 1 {
		t.Errorf("closed fold rendered %d lines, want 1", n)
	}
	m.handleKey("enter")
	if n := len(lines(m.Root())); n != 6 {
		t.Errorf("open fold rendered %d lines, want 6", n)
	}
}

func TestFormatSlider(t *testing.T) {
	got := formatSlider(10, 0, 10, "10")
	if !strings.HasSuffix(got, "● 10") {
		t.Errorf("formatSlider at max = %q", got)
	}
}

type panicRecorder struct {
	panics []*errors.PanicError
}

func (r *panicRecorder) HandleError(*errors.UIError)             {}
func (r *panicRecorder) HandlePanic(err *errors.PanicError)      { r.panics = append(r.panics, err) }
func (r *panicRecorder) HandleRebuildError(*errors.RebuildError) {}

func TestKeyPanicIsReported(t *testing.T) {
	rec := &panicRecorder{}
	old := errors.DefaultHandler
	errors.SetHandler(rec)
	defer errors.SetHandler(old)

	s := &state{}
	hooked := binding.OnChanged[bool](binding.MustField[bool](s, "On"), func(bool) { panic("hook failed") })
	root := element.NewColumn(element.CreateFieldElement(element.NewLabel("On"), hooked))
	m, err := NewModel(root, Options{Width: 60})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	m.handleKey(" ")
	if !s.On {
		t.Error("write should land before the hook panics")
	}
	if len(rec.panics) != 1 || rec.panics[0].Op != "term.Node.key" {
		t.Fatalf("panics = %v, want one from term.Node.key", rec.panics)
	}
	if _, cmd := m.Update(tickMsg{}); cmd == nil {
		t.Error("model should keep ticking after a contained panic")
	}
}
