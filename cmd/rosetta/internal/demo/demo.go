// Package demo builds the sample element tree shown by "rosetta demo".
package demo

import (
	"fmt"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/host"
	"github.com/go-drift/rosetta/pkg/reactive"
	"github.com/go-drift/rosetta/pkg/ui"
)

// Mode is the vehicle's driving mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModePatrol
	ModeChase
)

// EnumOptions implements binding.Enum.
func (Mode) EnumOptions() []string { return []string{"Idle", "Patrol", "Chase"} }

// Stats are the tunable numbers of a vehicle.
type Stats struct {
	Speed  float64             `range:"0,10"`
	Level  int                 `range:"1,20"`
	Spread binding.MinMax[int] `range:"0,100"`
	Armor  int                 `rosetta:"readonly"`
}

// Vehicle is the object the demo edits.
type Vehicle struct {
	Name      string
	Active    bool
	Mode      Mode
	Stats     Stats
	Waypoints []string
}

// Drone is a host object that comes and goes while the demo runs.
type Drone struct {
	host.Lifetime
	Name   string
	Signal float64 `range:"0,1"`
}

// CreateElement implements ui.ElementCreator.
func (d *Drone) CreateElement(*element.Label) element.Element {
	return ui.Column(
		ui.Field[string](d, "Name"),
		ui.Slider[float64](d, "Signal"),
	)
}

// App holds the demo state and its element tree.
type App struct {
	Vehicle  *Vehicle
	Registry *host.Registry
	Root     *element.Column

	stats     *element.Fold
	inspector *element.Window
	spawned   int
}

// New builds the demo tree. version is shown in the about window.
func New(version string) *App {
	a := &App{
		Vehicle: &Vehicle{
			Name:      "rover",
			Mode:      ModePatrol,
			Stats:     Stats{Speed: 4.5, Level: 3, Spread: binding.MinMax[int]{Min: 20, Max: 60}, Armor: 12},
			Waypoints: []string{"dock", "ridge"},
		},
		Registry: host.NewRegistry(),
	}
	v := a.Vehicle

	a.stats = ui.Fold("Stats",
		ui.Slider[float64](v, "Stats.Speed"),
		ui.Slider[int](v, "Stats.Level"),
		ui.MinMaxSlider[int](v, "Stats.Spread"),
		ui.Field[int](v, "Stats.Armor"),
	)
	a.inspector = ui.Window("Drone inspector",
		ui.DynamicElementFindObject(a.Registry, func(d *Drone) element.Element {
			return ui.FieldOf("Tracking", binding.Func(func() string { return d.Name }))
		}),
		ui.ElementCreatorInline[*Drone](a.Registry),
	)

	a.Root = ui.Column(
		ui.Field[string](v, "Name"),
		ui.Field[bool](v, "Active"),
		ui.Field[Mode](v, "Mode"),
		ui.DynamicElementOnStatusChanged(func() Mode { return v.Mode }, func(m Mode) element.Element {
			return ui.FieldOf("Hint", binding.Const(hint(m)))
		}),
		a.stats,
		ui.DynamicElementIf(func() bool { return v.Active }, func() element.Element {
			return ui.Fold("Route", ui.List("Waypoints", &v.Waypoints))
		}),
		ui.Row(
			ui.Button("Spawn drone", a.SpawnDrone),
			ui.Button("Destroy drone", a.DestroyDrone),
		),
		ui.WindowLauncher(a.inspector),
		ui.ElementCreatorWindowLauncher[*Drone](a.Registry, ""),
		ui.LazyWindowLauncher("About", func() *element.Window {
			return ui.Window("About", ui.FieldOf("Version", binding.Const(version)))
		}),
	)
	return a
}

func hint(m Mode) string {
	switch m {
	case ModePatrol:
		return "following waypoints"
	case ModeChase:
		return "pursuing target"
	default:
		return "parked"
	}
}

// SpawnDrone registers a new drone.
func (a *App) SpawnDrone() {
	a.spawned++
	a.Registry.Add(&Drone{Name: fmt.Sprintf("drone-%d", a.spawned), Signal: 0.5})
}

// DestroyDrone destroys the first live drone, if any.
func (a *App) DestroyDrone() {
	d, ok := host.Find[*Drone](a.Registry)
	if !ok {
		return
	}
	d.Destroy()
	a.Registry.Remove(d)
}

// Flags returns the open states worth keeping across runs, by store key.
func (a *App) Flags() map[string]*reactive.Property[bool] {
	return map[string]*reactive.Property[bool]{
		"fold.stats":       a.stats.IsOpen(),
		"window.inspector": a.inspector.IsOpen(),
	}
}
