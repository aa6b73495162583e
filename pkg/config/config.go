// Package config loads the optional rosetta.yaml project file and resolves
// it against the project's go.mod.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = "rosetta.yaml"

// Defaults applied when rosetta.yaml leaves a value unset.
const (
	DefaultTickInterval    = 100 * time.Millisecond
	DefaultFindMinInterval = time.Second
	DefaultFindMaxInterval = 1500 * time.Millisecond
	DefaultVersion         = "v1.0.0"
)

// Config represents the optional rosetta.yaml configuration.
type Config struct {
	Version string       `yaml:"version,omitempty"`
	App     AppConfig    `yaml:"app"`
	Tick    TickConfig   `yaml:"tick"`
	Find    FindConfig   `yaml:"find"`
	Errors  ErrorsConfig `yaml:"errors"`
	Debug   bool         `yaml:"debug,omitempty"`
	State   StateConfig  `yaml:"state"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// TickConfig controls the update loop.
type TickConfig struct {
	Interval Duration `yaml:"interval,omitempty"`
}

// FindConfig bounds the polling interval of find-object dynamic elements.
type FindConfig struct {
	MinInterval Duration `yaml:"min_interval,omitempty"`
	MaxInterval Duration `yaml:"max_interval,omitempty"`
}

// ErrorsConfig controls error logging.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// StateConfig locates the persisted UI state. An empty path disables it.
type StateConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root            string        `yaml:"root"`
	ModulePath      string        `yaml:"module,omitempty"`
	Version         string        `yaml:"version"`
	AppName         string        `yaml:"app_name"`
	TickInterval    time.Duration `yaml:"-"`
	FindMinInterval time.Duration `yaml:"-"`
	FindMaxInterval time.Duration `yaml:"-"`
	Verbose         bool          `yaml:"verbose"`
	Debug           bool          `yaml:"debug"`
	StatePath       string        `yaml:"state_path,omitempty"`
}

// LoadOptional reads rosetta.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes rosetta.yaml contents. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads rosetta.yaml (if present) and resolves defaults. A go.mod in
// dir is optional; when present its module path names the app.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.resolve(dir, modulePath)
}

func (cfg *Config) resolve(dir, modulePath string) (*Resolved, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = DefaultVersion
	}
	if err := validateVersion(version); err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	r := &Resolved{
		Root:            dir,
		ModulePath:      modulePath,
		Version:         version,
		AppName:         appName,
		TickInterval:    orDefault(cfg.Tick.Interval, DefaultTickInterval),
		FindMinInterval: orDefault(cfg.Find.MinInterval, DefaultFindMinInterval),
		FindMaxInterval: orDefault(cfg.Find.MaxInterval, DefaultFindMaxInterval),
		Verbose:         cfg.Errors.Verbose,
		Debug:           cfg.Debug,
	}
	if p := strings.TrimSpace(cfg.State.Path); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		r.StatePath = p
	}

	if r.TickInterval <= 0 {
		return nil, fmt.Errorf("tick.interval must be positive (got %s)", r.TickInterval)
	}
	if r.FindMinInterval <= 0 || r.FindMaxInterval < r.FindMinInterval {
		return nil, fmt.Errorf("find intervals must satisfy 0 < min_interval <= max_interval (got %s, %s)",
			r.FindMinInterval, r.FindMaxInterval)
	}
	return r, nil
}

// MarshalYAML writes durations as strings.
func (r *Resolved) MarshalYAML() (any, error) {
	type plain Resolved
	return struct {
		plain           `yaml:",inline"`
		TickInterval    string `yaml:"tick_interval"`
		FindMinInterval string `yaml:"find_min_interval"`
		FindMaxInterval string `yaml:"find_max_interval"`
	}{
		plain:           plain(*r),
		TickInterval:    r.TickInterval.String(),
		FindMinInterval: r.FindMinInterval.String(),
		FindMaxInterval: r.FindMaxInterval.String(),
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// returns the current directory when no go.mod is found.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func orDefault(d Duration, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return time.Duration(d)
}

func validateVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != "v1" {
		return fmt.Errorf("unsupported config version %s (major %s, want v1)", v, major)
	}
	return nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "rosetta_app"
	}
	return base
}
