// warpcheck drives the perspective puzzle verifier from a terminal.
//
// Usage:
//
//	warpcheck play [--type=<name>] [--scale=4] [--mute]
//	warpcheck snapshot --out=<png> [--type=<name>] [--frames=120]
//	warpcheck simulate [--ticks=36000] [--regen-every=0]
//	warpcheck types
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/config"
	"github.com/lixenwraith/warpcheck/vmath"
)

// version is set at build time via -ldflags
var version = "dev"

var (
	configPath string
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "warpcheck",
	Short: "Perspective-distorted canvas puzzle verifier",
	Long: "warpcheck animates a chaos-driven shape field under a blending\n" +
		"fisheye/planar/globe projection and verifies click sequences against\n" +
		"the presented challenge.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write debug logs under "+logDir)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveType maps a flag value to a challenge type, "random" and "" pick one
func resolveType(name string, rng *vmath.FastRand) (challenge.Type, error) {
	if name == "" || name == "random" {
		all := challenge.All()
		return all[rng.Intn(len(all))], nil
	}
	return challenge.ParseType(name)
}

// loadConfig reads --config and applies a seed override when non-zero
func loadConfig(seed uint64) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Engine.Seed = seed
	}
	return cfg, nil
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List challenge types and their instruction text",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(0)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range challenge.All() {
			fmt.Fprintf(out, "%-20s %s\n", t, cfg.Instruction(t))
		}
		return nil
	},
}
