// carousel-sandbox renders the tilt carousel in a terminal
// Keyboard drives scroll and a simulated orientation sensor
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tilt-carousel/audio"
	"github.com/lixenwraith/tilt-carousel/config"
	"github.com/lixenwraith/tilt-carousel/core"
	"github.com/lixenwraith/tilt-carousel/engine"
	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/scroll"
	"github.com/lixenwraith/tilt-carousel/sensor"
	"github.com/lixenwraith/tilt-carousel/status"
	"github.com/lixenwraith/tilt-carousel/vmath"
)

const (
	tiltStepDeg  = 2.0
	dragPixels   = 40.0
	visibleRange = 3
	eventBuffer  = 64
)

// errQuit ends the loops when the user quits
var errQuit = errors.New("quit")

var (
	flagVariation = flag.String("variation", "", "variation preset (overrides CAROUSEL_VARIATION)")
	flagPlatform  = flag.String("platform", "", "sensor platform ios|android (overrides CAROUSEL_PLATFORM)")
	flagFPS       = flag.Int("fps", 0, "frame rate (overrides CAROUSEL_FPS)")
	flagCards     = flag.Int("cards", 12, "number of cards")
	flagMock      = flag.Bool("mock", false, "drive tilt from a wandering mock sensor instead of the keyboard")
	flagMute      = flag.Bool("mute", false, "disable detent sounds")
	flagDebug     = flag.Bool("debug", false, "write logs to logs/carousel.log (overrides CAROUSEL_DEBUG)")
)

type sandbox struct {
	cfg      config.Config
	lay      layout
	cards    int
	screen   tcell.Screen
	registry *status.Registry

	engine  *engine.Engine
	clock   *engine.FrameClock
	pause   *engine.PausableClock
	sampler *sensor.Sampler
	manual  *sensor.ManualReader // nil in mock mode
	snapper *scroll.Snapper
	player  *audio.Player

	frames    chan engine.Frame
	last      engine.Frame
	centred   int
	showHUD   bool
	variation int

	finiOnce sync.Once
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	s := newSandbox(cfg, screen, *flagCards)

	core.SetCrashHandler(func(r any, stack []byte) {
		s.fini()
		fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, stack)
		os.Exit(2)
	})

	if err := s.run(); err != nil {
		s.fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment then applies explicitly set flags
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variation":
			cfg.Variation = *flagVariation
		case "platform":
			cfg.Platform = *flagPlatform
		case "fps":
			cfg.FPS = *flagFPS
		case "debug":
			cfg.Debug = *flagDebug
		}
	})
	return cfg, cfg.Validate()
}

func newSandbox(cfg config.Config, screen tcell.Screen, cards int) *sandbox {
	if cards < 1 {
		cards = 1
	}
	reg := status.NewRegistry()

	var reader sensor.Reader
	var manual *sensor.ManualReader
	if *flagMock {
		reader = sensor.NewMockReader(nil)
	} else {
		manual = &sensor.ManualReader{}
		// Start level: held at the natural forward tilt
		manual.Set(0, parameter.BiasAngle)
		reader = manual
	}

	sampler := sensor.NewSampler(reader, cfg.SensorPlatform(), cfg.SensorSampleInterval(), reg)
	eng := engine.New(engine.Options{
		Variation: cfg.Variation,
		Stiffness: cfg.Stiffness,
		Source:    sampler,
		Registry:  reg,
	})

	s := &sandbox{
		cfg:      cfg,
		cards:    cards,
		screen:   screen,
		registry: reg,
		engine:   eng,
		sampler:  sampler,
		manual:   manual,
		snapper:  scroll.NewSnapper(eng.Scroll(), cfg.ItemWidth),
		frames:   make(chan engine.Frame, 1),
		showHUD:  true,
		lay: layout{
			colsPerSlot: 26,
			cardCols:    20,
			cardRows:    9,
			itemWidth:   cfg.ItemWidth,
			perspective: cfg.Perspective,
		},
	}
	s.variation = indexOf(parameter.Names(), eng.Variation().Name)
	s.pause = engine.NewPausableClock(nil)
	s.clock = engine.NewFrameClock(eng, s.pause, cfg.FrameInterval(), s.deliver)
	s.publishVisible()

	if !*flagMute {
		p := audio.NewPlayer(nil)
		if err := p.Initialize(); err != nil {
			// Non-fatal, carousel works without sound
			log.Printf("audio: initialization failed: %v", err)
		} else {
			s.player = p
		}
	}
	return s
}

// deliver hands a frame to the UI goroutine, replacing any undrawn frame
func (s *sandbox) deliver(f engine.Frame) {
	select {
	case s.frames <- f:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- f:
	default:
	}
}

func (s *sandbox) fini() {
	s.finiOnce.Do(func() {
		s.clock.Stop()
		s.sampler.Stop()
		if s.player != nil {
			s.player.Cleanup()
		}
		s.screen.Fini()
	})
}

func (s *sandbox) run() error {
	s.sampler.Start()
	s.clock.Start()
	log.Printf("sandbox: started variation=%s platform=%s fps=%d", s.engine.Variation().Name, s.sampler.Platform(), s.cfg.FPS)

	return runLoops(s.screen.PollEvent, func(ctx context.Context, events <-chan tcell.Event) error {
		// Fini unblocks PollEvent so the pump can exit
		defer s.fini()
		return s.loop(ctx, events)
	})
}

// runLoops pumps events from poll into loop until loop returns or poll yields nil
// Returning errQuit from loop is a clean exit and cancels the pump
func runLoops(poll func() tcell.Event, loop func(context.Context, <-chan tcell.Event) error) error {
	events := make(chan tcell.Event, eventBuffer)
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		for {
			ev := poll()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		return loop(ctx, events)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (s *sandbox) loop(ctx context.Context, events <-chan tcell.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !s.handleEvent(ev) {
				log.Printf("sandbox: quit after %d frames", s.last.Seq)
				return errQuit
			}
		case f := <-s.frames:
			s.onFrame(f)
		}
	}
}

func (s *sandbox) onFrame(f engine.Frame) {
	s.last = f

	// Scroll animation runs at frame rate; the engine reads it next frame
	s.snapper.Advance(f.Delta)
	s.publishVisible()

	if c := s.engine.Scroll().Nearest(); c != s.centred {
		s.centred = c
		if s.player != nil {
			s.player.Play(audio.SoundDetent)
		}
	}

	s.draw()
}

// publishVisible sends the cards around the scroll position to the frame clock
func (s *sandbox) publishVisible() {
	c := s.engine.Scroll().Nearest()
	lo := max(0, c-visibleRange)
	hi := min(s.cards-1, c+visibleRange)
	indices := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		indices = append(indices, i)
	}
	s.clock.SetVisible(indices)
}

func (s *sandbox) draw() {
	s.screen.Clear()
	drawFrame(s.screen, s.last, s.lay)
	if s.showHUD {
		drawHUD(s.screen, s.header(), s.registry)
	}
	s.screen.Show()
}

func (s *sandbox) header() []string {
	v := s.engine.Variation()
	sensorState := "mock"
	if s.manual != nil {
		roll, pitch := s.manual.Angles()
		sensorState = fmt.Sprintf("roll %+.0f° pitch %+.0f°", vmath.RadToDeg(roll), vmath.RadToDeg(pitch))
		if s.manual.Offline() {
			sensorState = "offline"
		}
	}
	return []string{
		fmt.Sprintf("variation %-12s damping %-6.1f platform %-8s sensor %s", v.Name, v.Damping, s.sampler.Platform(), sensorState),
		fmt.Sprintf("card %d/%d  target %d  paused %v", s.centred, s.cards-1, s.snapper.Target(), s.pause.Paused()),
		"←/→ h/l snap  H/L drag  wasd tilt  r level  1-0 variation  p platform  u sensor  space pause  m mute  tab hud  q quit",
	}
}

// handleEvent applies one input event; returns false to quit
func (s *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			s.step(-1)
		case tcell.KeyRight:
			s.step(1)
		case tcell.KeyTab:
			s.showHUD = !s.showHUD
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}
	}
	return true
}

func (s *sandbox) handleRune(r rune) bool {
	tilt := vmath.DegToRad(tiltStepDeg)
	switch r {
	case 'q':
		return false
	case ' ':
		paused := s.pause.Toggle()
		log.Printf("sandbox: paused=%v", paused)
	case 'h':
		s.step(-1)
	case 'l':
		s.step(1)
	case 'H':
		s.drag(-dragPixels)
	case 'L':
		s.drag(dragPixels)
	case 'a':
		s.nudge(-tilt, 0)
	case 'd':
		s.nudge(tilt, 0)
	case 'w':
		s.nudge(0, tilt)
	case 's':
		s.nudge(0, -tilt)
	case 'r':
		if s.manual != nil {
			s.manual.Set(0, parameter.BiasAngle)
		}
	case 'p':
		if s.sampler.Platform() == sensor.PlatformIOS {
			s.sampler.SetPlatform(sensor.PlatformAndroid)
		} else {
			s.sampler.SetPlatform(sensor.PlatformIOS)
		}
	case 'u':
		if s.manual != nil {
			s.manual.SetOffline(!s.manual.Offline())
		}
	case 'm':
		if s.player != nil {
			s.player.Cleanup()
			s.player = nil
		}
	default:
		if r >= '0' && r <= '9' {
			s.selectVariation(r)
		}
	}
	return true
}

func (s *sandbox) step(delta int) {
	target := vmath.Clamp(float64(s.snapper.Target()+delta), 0, float64(s.cards-1))
	s.snapper.SnapTo(int(target))
}

func (s *sandbox) drag(pixels float64) {
	s.snapper.Drag(pixels)
	if s.snapper.Target() < 0 {
		s.snapper.SnapTo(0)
	} else if s.snapper.Target() > s.cards-1 {
		s.snapper.SnapTo(s.cards - 1)
	}
}

func (s *sandbox) nudge(dRoll, dPitch float64) {
	if s.manual != nil {
		s.manual.Nudge(dRoll, dPitch)
	}
}

// selectVariation maps '1'..'9' to the first nine presets and '0' to the tenth
func (s *sandbox) selectVariation(r rune) {
	names := parameter.Names()
	i := int(r - '1')
	if r == '0' {
		i = 9
	}
	if i < 0 || i >= len(names) || i == s.variation {
		return
	}
	s.variation = i
	v := s.engine.SetVariation(names[i])
	log.Printf("sandbox: variation %s", v.Name)
	if s.player != nil {
		s.player.Play(audio.SoundSwitch)
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
