package headless

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/element"
)

func TestMeasureLabel(t *testing.T) {
	if got := MeasureLabel("Speed"); got != 35 {
		t.Errorf("MeasureLabel(Speed) = %d, want 35", got)
	}
	if got := MeasureLabel(""); got != 0 {
		t.Errorf("MeasureLabel(\"\") = %d, want 0", got)
	}
}

func TestValueWidgetPushAndEdit(t *testing.T) {
	f := New()
	speed := 2
	field := element.NewIntField(element.NewLabel("Speed"), binding.Ptr(&speed))
	w, err := f.Build(field)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.Label != "Speed" || w.LabelWidth != 35 || w.Value != 2 {
		t.Errorf("widget = %+v", w)
	}

	speed = 4
	element.Tick(field)
	if w.Value != 4 {
		t.Errorf("pushed value = %v, want 4", w.Value)
	}

	if err := w.Edit(9); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if speed != 9 {
		t.Errorf("speed = %d, want 9", speed)
	}
	if err := w.Edit("nine"); err == nil {
		t.Error("Edit with wrong type should fail")
	}
}

func TestLabelFuncFollowsText(t *testing.T) {
	f := New()
	n := 0
	label := element.NewLabelFunc(func() string {
		n++
		return fmt.Sprintf("tick%d", n)
	})
	w, err := f.Build(label)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	element.Tick(label)
	if w.Label != "tick2" {
		t.Errorf("label = %q, want tick2", w.Label)
	}
}

func TestFoldAndList(t *testing.T) {
	f := New()
	values := []int{1, 2}
	fold := element.CreateListElement(element.NewLabel("Values"), binding.List[int](binding.Ptr(&values)), nil)
	w, err := f.Build(fold)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.Kind != "fold" || w.Open {
		t.Errorf("fold widget = %v open=%v", w, w.Open)
	}
	w.Click()
	if !w.Open {
		t.Error("click should open the fold")
	}

	listWidget := w.Children[0]
	if len(listWidget.Children) != 2 {
		t.Fatalf("list items = %d, want 2", len(listWidget.Children))
	}
	old := listWidget.Children[0]
	listWidget.Click()
	if diff := cmp.Diff([]int{1, 2, 0}, values); diff != "" {
		t.Errorf("after append (-want +got):\n%s", diff)
	}
	if !old.Disposed {
		t.Error("old item widgets should be disposed on rebuild")
	}
	if len(listWidget.Children) != 3 {
		t.Errorf("list items = %d, want 3", len(listWidget.Children))
	}

	listWidget.Children[0].Click()
	if diff := cmp.Diff([]int{2, 0}, values); diff != "" {
		t.Errorf("after remove (-want +got):\n%s", diff)
	}
}

func TestSliderBounds(t *testing.T) {
	f := New()
	v := 0.5
	s := element.NewFloatSlider(nil, binding.Ptr(&v), binding.Const(0.0), binding.Const(2.0))
	w, err := f.Build(s)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.Min != 0.0 || w.Max != 2.0 {
		t.Errorf("bounds = [%v,%v], want [0,2]", w.Min, w.Max)
	}
}

func TestHiddenElementIsNotShown(t *testing.T) {
	f := New()
	b := element.NewButton(element.NewLabel("Go"), nil)
	col := element.NewColumn(b)
	w, err := f.Build(col)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	col.Enabled().Set(false)
	if w.Children[0].Shown() {
		t.Error("child of a hidden container should not be shown")
	}
}

func TestLazyLauncherAttachesWindow(t *testing.T) {
	f := New()
	l := element.NewLazyWindowLauncher(element.NewLabel("Stats"), func() *element.Window {
		return element.NewWindow(element.NewLabel("Stats"))
	})
	w, err := f.Build(l)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(w.Children) != 0 {
		t.Fatal("window should not exist before first open")
	}
	w.Click()
	if len(w.Children) != 1 || w.Children[0].Kind != "window" || !w.Children[0].Open {
		t.Errorf("launcher children = %v", w.Children)
	}
	if !w.Open {
		t.Error("launcher should report the window open")
	}
}
