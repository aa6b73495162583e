package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/go-drift/rosetta/pkg/store"
)

func init() {
	RegisterCommand(&Command{
		Name:  "state",
		Short: "Show or clear persisted open states",
		Long: `Show or clear the open states persisted by "rosetta demo".

Subcommands:
  list    Print every stored flag (default)
  clear   Delete every stored flag

The state file is configured with state.path in rosetta.yaml.`,
		Usage: "rosetta state [list|clear]",
		Run:   runState,
	})
}

func runState(args []string) error {
	action := "list"
	if len(args) > 0 {
		action = args[0]
	}
	if action != "list" && action != "clear" {
		return fmt.Errorf("unknown action %q (use list or clear)", action)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.StatePath == "" {
		return fmt.Errorf("state.path is not set in rosetta.yaml")
	}

	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	defer st.Close()

	if action == "clear" {
		return clearState(st, os.Stdout)
	}
	return listState(st, os.Stdout)
}

func listState(st *store.Store, w io.Writer) error {
	keys, err := st.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "No stored flags.")
		return nil
	}
	for _, key := range keys {
		v, err := st.Bool(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-24s %t\n", key, v)
	}
	return nil
}

func clearState(st *store.Store, w io.Writer) error {
	keys, err := st.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := st.Delete(key); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Cleared %d flags from %s\n", len(keys), st.Path())
	return nil
}
