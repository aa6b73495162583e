package testing

import (
	"testing"
	"time"

	"github.com/go-drift/rosetta/pkg/host"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeClock_Install(t *testing.T) {
	clk := NewFakeClock()
	restore := clk.Install()

	clk.Advance(time.Hour)
	if !host.Now().Equal(clk.Now()) {
		t.Errorf("host.Now() = %v, want %v", host.Now(), clk.Now())
	}

	restore()
	if host.Now().Equal(clk.Now()) {
		t.Error("host clock should be restored")
	}
}

func TestUITester_Clock(t *testing.T) {
	tester := NewUITesterWithT(t)
	clk := tester.Clock()
	if clk == nil {
		t.Fatal("expected non-nil clock")
	}
	before := host.Now()
	clk.Advance(time.Second)
	if got := host.Now().Sub(before); got != time.Second {
		t.Errorf("host clock advanced %v, want 1s", got)
	}
}
