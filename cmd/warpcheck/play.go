package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/warpcheck/audio"
	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/config"
	"github.com/lixenwraith/warpcheck/engine"
	"github.com/lixenwraith/warpcheck/logging"
	"github.com/lixenwraith/warpcheck/render"
	"github.com/lixenwraith/warpcheck/vmath"
)

const (
	statusRows      = 2
	previewInterval = time.Second / 30
)

var errQuit = errors.New("quit")

var (
	playType  string
	playScale int
	playMute  bool
	playSeed  uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play challenges in the terminal with the mouse",
	Long: `Renders the puzzle as half-block cells and forwards mouse presses
to the engine. Keys: r regenerate, s submit, n next type, m mute, q quit.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playType, "type", "random", "challenge type, see 'warpcheck types'")
	playCmd.Flags().IntVar(&playScale, "scale", 4, "surface pixels per preview pixel")
	playCmd.Flags().BoolVar(&playMute, "mute", false, "disable audio cues")
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "random seed, 0 uses config or time")
}

// session binds the engine to a terminal screen
type session struct {
	cfg    *config.Config
	e      *engine.Engine
	screen tcell.Screen
	view   *preview
	sounds *audio.SoundManager
	pinned bool // --type named a fixed type

	mu      sync.Mutex
	rng     *vmath.FastRand
	kind    challenge.Type
	message string
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(playSeed)
	if err != nil {
		return err
	}
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = uint64(time.Now().UnixNano())
	}
	if logFile := setupLogging(cfg.Log, debugLog, true); logFile != nil {
		defer logFile.Close()
	}
	log := logging.New("play")

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	// Restore the terminal before reporting any crash
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mWARPCHECK CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	cols, rows := screen.Size()
	view := newPreview(cols, rows-statusRows, playScale)
	surface := render.NewSurface(view.surfaceSize())

	opts := append(cfg.Options(),
		engine.WithLogger(logging.New("engine")),
		engine.WithCrashHandler(crash),
	)
	e, err := engine.New(surface, opts...)
	if err != nil {
		return err
	}

	sounds := audio.NewSoundManager()
	if cfg.Audio.Enabled && !playMute {
		if err := sounds.Initialize(); err != nil {
			log.Warn("audio unavailable", "error", err)
		}
	}
	defer sounds.Cleanup()

	e.OnVerdict(func(v challenge.Verdict) {
		if v.Passed() {
			sounds.PlaySuccess()
		} else {
			sounds.PlayFailure()
		}
		log.Info("verdict", "type", v.Type, "outcome", v.Outcome, "reason", v.Reason, "clicks", len(v.Log))
	})

	s := &session{
		cfg:    cfg,
		e:      e,
		screen: screen,
		view:   view,
		sounds: sounds,
		rng:    vmath.NewFastRand(cfg.Engine.Seed ^ 0x9e3779b97f4a7c15),
		pinned: playType != "" && playType != "random",
	}
	if s.kind, err = resolveType(playType, s.rng); err != nil {
		return err
	}
	if err := e.Present(s.kind, cfg.Instruction(s.kind)); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if err := e.Start(ctx); err != nil {
		return err
	}
	defer e.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.draw(gctx) })
	g.Go(func() error { return s.input(gctx, events) })

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// draw copies finished frames to the terminal until ctx ends
func (s *session) draw(ctx context.Context) error {
	ticker := time.NewTicker(previewInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		s.e.View(func(surf render.Surface) {
			if img, ok := surf.(interface{ Image() image.Image }); ok {
				s.view.capture(img.Image())
			}
		})
		s.view.paint(s.screen)

		st := s.e.Status()
		if st.State == challenge.StateIdle {
			s.next()
		}
		s.statusLine(st)
		s.screen.Show()
	}
}

// input handles keys, mouse presses and resizes until quit
func (s *session) input(ctx context.Context, events <-chan tcell.Event) error {
	for {
		var ev tcell.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev = <-events:
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return errQuit
			}
			if ev.Key() != tcell.KeyRune {
				continue
			}
			switch ev.Rune() {
			case 'q':
				return errQuit
			case 'r':
				s.regenerate()
			case 's':
				if _, err := s.e.Submit(); err != nil {
					s.notify(err.Error())
				}
			case 'n':
				s.next()
			case 'm':
				playMute = !playMute
				s.sounds.SetMuted(playMute)
			}

		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			cx, cy := ev.Position()
			x, y, ok := s.view.logical(cx, cy, s.cfg.Engine.PixelRatio)
			if !ok {
				continue
			}
			if !s.e.Pointer(x, y) {
				s.sounds.PlayLock()
			}

		case *tcell.EventResize:
			cols, rows := s.screen.Size()
			s.view.resize(cols, rows-statusRows)
			if err := s.e.Resize(s.view.surfaceSize()); err != nil {
				return err
			}
			s.screen.Clear()
		}
	}
}

// regenerate asks for a fresh layout, the limiter may refuse
func (s *session) regenerate() {
	d, err := s.e.Regenerate()
	switch {
	case errors.Is(err, engine.ErrLocked):
		s.sounds.PlayLock()
		s.notify(fmt.Sprintf("locked for %ds", int(d.Remaining.Seconds()+0.999)))
	case err != nil:
		s.notify(err.Error())
	case d.Locked():
		s.notify(fmt.Sprintf("penalty %ds", d.Penalty))
	default:
		s.notify("")
	}
}

func (s *session) notify(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// next presents another round, a new random type unless --type pinned one
func (s *session) next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind := s.kind
	if !s.pinned {
		all := challenge.All()
		kind = all[s.rng.Intn(len(all))]
	}
	err := s.e.Present(kind, s.cfg.Instruction(kind))
	switch {
	case errors.Is(err, engine.ErrLocked):
		s.sounds.PlayLock()
		s.message = fmt.Sprintf("locked for %ds", int(s.e.Status().LockRemaining.Seconds()+0.999))
	case err != nil:
		s.message = err.Error()
	default:
		s.kind = kind
		s.message = ""
	}
}

// statusLine renders the instruction and round state below the preview
func (s *session) statusLine(st engine.Status) {
	cols, rows := s.screen.Size()

	line := fmt.Sprintf(" %s  [%d/%d]  %s", st.Instruction, st.Clicks, st.Required, st.State)
	if st.Locked && st.LockRemaining > 0 {
		line += fmt.Sprintf("  locked %.1fs", st.LockRemaining.Seconds())
	}
	if st.Verdict != nil {
		line += fmt.Sprintf("  last: %s", st.Verdict.Outcome)
		if !st.Verdict.Passed() {
			line += " (" + st.Verdict.Reason.String() + ")"
		}
	}
	help := " r regenerate  s submit  n next  m mute  q quit"
	s.mu.Lock()
	if s.message != "" {
		help += "  | " + s.message
	}
	s.mu.Unlock()

	s.text(0, rows-2, cols, line, tcell.StyleDefault.Bold(true))
	s.text(0, rows-1, cols, help, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func (s *session) text(x, y, width int, str string, style tcell.Style) {
	i := 0
	for _, r := range str {
		if i >= width {
			return
		}
		s.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
	for ; i < width; i++ {
		s.screen.SetContent(x+i, y, ' ', nil, style)
	}
}
