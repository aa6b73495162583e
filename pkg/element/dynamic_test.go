package element

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDynamicOnStatusChanged(t *testing.T) {
	statuses := []string{"s0", "s1", "s1", "s2"}
	next := 0
	var built []string
	d := NewDynamicOnStatusChanged(
		func() string {
			s := statuses[next]
			if next < len(statuses)-1 {
				next++
			}
			return s
		},
		func(s string) Element {
			built = append(built, s)
			return NewLabel(s)
		},
	)

	for range 3 {
		Tick(d)
	}

	if d.RebuildCount() != 2 {
		t.Errorf("RebuildCount = %d, want 2", d.RebuildCount())
	}
	if diff := cmp.Diff([]string{"s0", "s1", "s2"}, built); diff != "" {
		t.Errorf("builds mismatch (-want +got):\n%s", diff)
	}
	if got := d.Contents()[0].(*Label).Text(); got != "s2" {
		t.Errorf("contents = %q, want s2", got)
	}
}

func TestDynamicIf(t *testing.T) {
	conds := []bool{false, true, true, false, true}
	next := 0
	d := NewDynamicIf(
		func() bool {
			c := conds[next]
			next++
			return c
		},
		func() Element { return NewLabel("shown") },
	)
	if d.State() != Empty {
		t.Fatalf("initial state = %v, want empty", d.State())
	}

	var states []DynamicState
	for range 4 {
		Tick(d)
		states = append(states, d.State())
	}

	want := []DynamicState{Populated, Populated, Empty, Populated}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
	if d.RebuildCount() != 3 {
		t.Errorf("RebuildCount = %d, want 3", d.RebuildCount())
	}
}

func TestDynamicBuildFailure(t *testing.T) {
	rec := captureErrors(t)
	fail := false
	d := NewDynamic(func() Element {
		if fail {
			panic("lookup failed")
		}
		return NewLabel("ok")
	}, nil)

	fail = true
	d.Rebuild()
	if d.State() != Empty {
		t.Errorf("state after failed build = %v, want empty", d.State())
	}
	if d.Err() == nil {
		t.Error("Err should be set after a failed build")
	}
	if len(rec.rebuilds) != 1 {
		t.Errorf("got %d rebuild reports, want 1", len(rec.rebuilds))
	}

	fail = false
	d.Rebuild()
	if d.State() != Populated || d.Err() != nil {
		t.Errorf("state = %v err = %v, want populated without error", d.State(), d.Err())
	}
}

func TestDynamicExplicitTrigger(t *testing.T) {
	fire := false
	d := NewDynamic(func() Element { return NewButton(nil, nil) }, func(*Dynamic) bool { return fire })
	first := d.Contents()[0]

	var oldDestroyed bool
	d.OnRebuild(func() { oldDestroyed = first.IsDestroyed() })

	Tick(d)
	if d.RebuildCount() != 0 {
		t.Fatalf("rebuilt without trigger")
	}
	fire = true
	Tick(d)
	if d.RebuildCount() != 1 {
		t.Fatalf("RebuildCount = %d, want 1", d.RebuildCount())
	}
	if !oldDestroyed {
		t.Error("old contents should be destroyed before rebuild listeners run")
	}
	if d.Contents()[0] == first {
		t.Error("contents must not be reused across rebuilds")
	}
	if d.Contents()[0].Parent() != Element(d) {
		t.Error("new contents should be parented to the dynamic element")
	}
}

func TestDynamicTriggerPanicIsContained(t *testing.T) {
	rec := captureErrors(t)
	d := NewDynamic(func() Element { return nil }, func(*Dynamic) bool { panic("trigger") })
	Tick(d)
	if d.RebuildCount() != 0 {
		t.Error("panicking trigger should not rebuild")
	}
	if len(rec.panics) != 1 {
		t.Errorf("got %d panics, want 1", len(rec.panics))
	}
}
