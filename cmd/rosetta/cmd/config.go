package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration resolved from rosetta.yaml, go.mod and defaults.

Durations are printed in Go syntax (e.g. 1.5s).`,
		Usage: "rosetta config",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
