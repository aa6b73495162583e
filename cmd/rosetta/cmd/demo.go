package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/go-drift/rosetta/cmd/rosetta/internal/demo"
	termbackend "github.com/go-drift/rosetta/pkg/backend/term"
	"github.com/go-drift/rosetta/pkg/config"
	"github.com/go-drift/rosetta/pkg/store"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run the sample UI in the terminal",
		Long: `Run a sample settings UI in the terminal.

The demo edits a vehicle struct through fields, sliders, a dropdown and a
list, and shows dynamic elements that follow its state. Drones can be
spawned and destroyed to exercise find-object elements.

Keys:
  up/down, j/k, tab  Move focus
  space, enter       Toggle booleans, folds and windows
  +/-                Step numbers and sliders
  </>                Step the lower bound of range sliders
  a, x               Append to and remove from lists
  q, ctrl+c          Quit

Flags:
  --alt-screen       Use the alternate screen buffer
  --no-state         Do not restore or persist open states

Open states of folds and windows are persisted when state.path is set in
rosetta.yaml.`,
		Usage: "rosetta demo [--alt-screen] [--no-state]",
		Run:   runDemo,
	})
}

type demoOptions struct {
	altScreen bool
	noState   bool
}

func parseDemoArgs(args []string) (demoOptions, error) {
	opts := demoOptions{}
	for _, arg := range args {
		switch arg {
		case "--alt-screen":
			opts.altScreen = true
		case "--no-state":
			opts.noState = true
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

func runDemo(args []string) error {
	opts, err := parseDemoArgs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	restore := config.Apply(cfg)
	defer restore()

	app := demo.New(cfg.Version)

	if cfg.StatePath != "" && !opts.noState {
		st, err := store.Open(cfg.StatePath)
		if err != nil {
			return fmt.Errorf("failed to open state: %w", err)
		}
		defer st.Close()
		for key, prop := range app.Flags() {
			defer st.BindFlag(key, prop)()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return termbackend.Run(ctx, app.Root, termbackend.Options{
		Interval:  cfg.TickInterval,
		Width:     terminalWidth(),
		AltScreen: opts.altScreen,
	})
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func loadConfig() (*config.Resolved, error) {
	root := projectDir
	if root == "" {
		var err error
		root, err = config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
