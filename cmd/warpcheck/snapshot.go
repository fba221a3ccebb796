package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/warpcheck/engine"
	"github.com/lixenwraith/warpcheck/logging"
	"github.com/lixenwraith/warpcheck/render"
	"github.com/lixenwraith/warpcheck/vmath"
)

var (
	snapOut    string
	snapType   string
	snapFrames int
	snapWidth  int
	snapHeight int
	snapSeed   uint64
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render a challenge after N frames to a PNG file",
	RunE:  runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapOut, "out", "o", "warpcheck.png", "output PNG path")
	f.StringVar(&snapType, "type", "random", "challenge type")
	f.IntVar(&snapFrames, "frames", 120, "frames to advance before capture")
	f.IntVar(&snapWidth, "width", 640, "surface width")
	f.IntVar(&snapHeight, "height", 480, "surface height")
	f.Uint64Var(&snapSeed, "seed", 1, "random seed")
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(snapSeed)
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.Log, debugLog, false); logFile != nil {
		defer logFile.Close()
	}

	surface := render.NewSurface(snapWidth, snapHeight)
	opts := append(cfg.Options(), engine.WithLogger(logging.New("engine")))
	e, err := engine.New(surface, opts...)
	if err != nil {
		return err
	}

	t, err := resolveType(snapType, vmath.NewFastRand(cfg.Engine.Seed))
	if err != nil {
		return err
	}
	if err := e.Present(t, cfg.Instruction(t)); err != nil {
		return err
	}
	for i := 0; i < max(snapFrames, 1); i++ {
		e.Step()
	}

	if err := surface.SavePNG(snapOut); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	st := e.Status()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s, blend %.2f)\n", snapOut, st.Instruction, st.Type, st.Blend)
	return nil
}
