package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/config"
	"github.com/lixenwraith/warpcheck/engine"
	"github.com/lixenwraith/warpcheck/logging"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/render"
	"github.com/lixenwraith/warpcheck/status"
	"github.com/lixenwraith/warpcheck/vmath"
)

var simFlags simOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless random clicker against the engine on a simulated clock",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(simFlags.Seed)
		if err != nil {
			return err
		}
		if logFile := setupLogging(cfg.Log, debugLog, false); logFile != nil {
			defer logFile.Close()
		}

		rep, err := simulate(cfg, simFlags)
		if err != nil {
			return err
		}
		rep.print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simFlags.Type, "type", "random", "challenge type, random rotates types per round")
	f.IntVar(&simFlags.Ticks, "ticks", 3600, "frames to simulate")
	f.IntVar(&simFlags.ClickEvery, "click-every", 15, "frames between random clicks")
	f.IntVar(&simFlags.RegenEvery, "regen-every", 0, "frames between regenerate requests, 0 disables")
	f.IntVar(&simFlags.Width, "width", 480, "surface width")
	f.IntVar(&simFlags.Height, "height", 360, "surface height")
	f.Uint64Var(&simFlags.Seed, "seed", 1, "random seed")
}

type simOptions struct {
	Type       string
	Ticks      int
	ClickEvery int
	RegenEvery int
	Width      int
	Height     int
	Seed       uint64
}

type simReport struct {
	Ticks   int
	Passed  int
	Failed  int
	Blocked int
	Reasons map[string]int
	Metrics []status.Entry
}

var simStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// simulate steps an engine on a manual clock with random pointer presses
func simulate(cfg *config.Config, opt simOptions) (simReport, error) {
	rep := simReport{Ticks: opt.Ticks, Reasons: make(map[string]int)}
	rng := vmath.NewFastRand(cfg.Engine.Seed + 1)
	clock := engine.NewManualClock(simStart)

	opts := append(cfg.Options(),
		engine.WithClock(clock),
		engine.WithLogger(logging.New("engine")),
	)
	e, err := engine.New(render.NewSurface(opt.Width, opt.Height), opts...)
	if err != nil {
		return rep, err
	}
	e.OnVerdict(func(v challenge.Verdict) {
		if v.Passed() {
			rep.Passed++
			return
		}
		rep.Failed++
		rep.Reasons[v.Reason.String()]++
	})

	present := func() error {
		t, err := resolveType(opt.Type, rng)
		if err != nil {
			return err
		}
		return e.Present(t, cfg.Instruction(t))
	}
	if err := present(); err != nil {
		return rep, err
	}

	clickEvery := max(opt.ClickEvery, 1)
	for tick := 1; tick <= opt.Ticks; tick++ {
		clock.Frames(1, parameter.FrameInterval)

		if e.Status().State == challenge.StateIdle {
			if err := present(); err != nil {
				return rep, err
			}
		}

		if tick%clickEvery == 0 {
			if shapes := e.Shapes(); len(shapes) > 0 {
				s := shapes[rng.Intn(len(shapes))]
				if x, y, ok := e.Target(s.ID); ok {
					e.Pointer(x, y)
				}
			}
		}

		if opt.RegenEvery > 0 && tick%opt.RegenEvery == 0 {
			if _, err := e.Regenerate(); errors.Is(err, engine.ErrLocked) {
				rep.Blocked++
			}
		}

		e.Step()
	}

	rep.Metrics = e.Metrics().Snapshot()
	return rep, nil
}

func (r simReport) print(w io.Writer) {
	fmt.Fprintf(w, "ticks %d  passed %d  failed %d  blocked %d\n", r.Ticks, r.Passed, r.Failed, r.Blocked)

	reasons := make([]string, 0, len(r.Reasons))
	for k := range r.Reasons {
		reasons = append(reasons, k)
	}
	sort.Strings(reasons)
	for _, k := range reasons {
		fmt.Fprintf(w, "  %-20s %d\n", k, r.Reasons[k])
	}

	fmt.Fprintln(w)
	for _, m := range r.Metrics {
		fmt.Fprintf(w, "%-24s %s\n", m.Key, m.Value)
	}
}
