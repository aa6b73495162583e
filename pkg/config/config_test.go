package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/tools/inspector/v2\n\ngo 1.24\n")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ModulePath != "example.com/tools/inspector/v2" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
	if r.AppName != "inspector" {
		t.Errorf("AppName = %q, want inspector", r.AppName)
	}
	if r.TickInterval != DefaultTickInterval {
		t.Errorf("TickInterval = %s", r.TickInterval)
	}
	if r.FindMinInterval != time.Second || r.FindMaxInterval != 1500*time.Millisecond {
		t.Errorf("find intervals = %s, %s", r.FindMinInterval, r.FindMaxInterval)
	}
	if r.StatePath != "" || r.Debug || r.Verbose {
		t.Errorf("unexpected non-default values: %+v", r)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.AppName != "demo" || r.ModulePath != "" {
		t.Errorf("AppName = %q ModulePath = %q", r.AppName, r.ModulePath)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
version: v1.2.0
app:
  name: Inspector
tick:
  interval: 250ms
find:
  min_interval: 2s
  max_interval: 3s
errors:
  verbose: true
debug: true
state:
  path: .rosetta/state.db
`)
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.AppName != "Inspector" || r.Version != "v1.2.0" {
		t.Errorf("AppName = %q Version = %q", r.AppName, r.Version)
	}
	if r.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s", r.TickInterval)
	}
	if r.FindMinInterval != 2*time.Second || r.FindMaxInterval != 3*time.Second {
		t.Errorf("find intervals = %s, %s", r.FindMinInterval, r.FindMaxInterval)
	}
	if !r.Verbose || !r.Debug {
		t.Error("verbose and debug should be set")
	}
	if want := filepath.Join(dir, ".rosetta", "state.db"); r.StatePath != want {
		t.Errorf("StatePath = %q, want %q", r.StatePath, want)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{"bad version", "version: \"1.0\"\n", "not a valid semantic version"},
		{"major two", "version: v2.0.0\n", "unsupported config version"},
		{"bad duration", "tick:\n  interval: soon\n", "failed to parse"},
		{"unknown key", "colour: red\n", "failed to parse"},
		{"inverted find", "find:\n  min_interval: 2s\n  max_interval: 1s\n", "find intervals"},
		{"negative tick", "tick:\n  interval: -1s\n", "tick.interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.contents)
			_, err := Resolve(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Resolve error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if cfg.App.Name != "" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestResolvedMarshal(t *testing.T) {
	r := &Resolved{Root: "/tmp/x", Version: "v1.0.0", AppName: "x", TickInterval: 100 * time.Millisecond,
		FindMinInterval: time.Second, FindMaxInterval: 1500 * time.Millisecond}
	out, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{"app_name: x", "tick_interval: 100ms", "find_max_interval: 1.5s"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte("tick:\n  interval: 40ms\n"), &cfg); err != nil {
		t.Fatal(err)
	}
	out, err := yaml.Marshal(cfg.Tick)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != "interval: 40ms" {
		t.Errorf("Marshal = %q", out)
	}
}
