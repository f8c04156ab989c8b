// Command tepi renders a 2D scene with the software rasterizer, in the
// terminal, in a desktop window, or to image files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tepi-engine/tepi/pkg/config"
	"github.com/tepi-engine/tepi/pkg/display"
	"github.com/tepi-engine/tepi/pkg/display/window"
	"github.com/tepi-engine/tepi/pkg/logbuf"
	"github.com/tepi-engine/tepi/pkg/render"
)

var (
	configPath = flag.String("config", "", "Scene config (YAML); the demo scene if empty")
	mode       = flag.String("mode", "terminal", "Output: terminal, window or snapshot")
	outPath    = flag.String("out", "frame.png", "Snapshot file; a verb like %04d numbers each frame")
	frames     = flag.Int("frames", 1, "Frames to render in snapshot mode")
	targetFPS  = flag.Int("fps", 0, "Target FPS (overrides config)")
	bgColor    = flag.String("bg", "", "Background color, R,G,B or #rrggbb (overrides config)")
	logLevel   = flag.String("log-level", "", "Log level (overrides config)")
	logOut     = flag.String("log-out", "", "Structured log output path; stderr outside terminal mode")
	bands      = flag.Int("bands", 1, "Row bands rasterized in parallel")
	debug      = flag.Bool("debug", false, "Log pressed keys")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tepi - software rasterized 2D scenes\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tepi [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  X     - Toggle wireframe (terminal and window)\n")
		fmt.Fprintf(os.Stderr, "  Esc   - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := *logOut
	if out == "" && *mode != "terminal" {
		out = "stderr"
	}
	log, err := newLogger(cfg.Log.Level, cfg.Log.Encoding, out)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sink := io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open engine log: %w", err)
		}
		defer f.Close()
		sink = f
	}
	events := logbuf.New("tepi", logbuf.WithCapacity(cfg.Log.Buffer), logbuf.WithSink(sink), logbuf.WithZap(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "snapshot":
		return runSnapshot(ctx, cfg, events, log)
	case "window":
		return runWindow(ctx, cfg, events, log)
	case "terminal":
		return runTerminal(ctx, cfg, events, log)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}

	if *targetFPS > 0 {
		cfg.FPS = *targetFPS
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *bgColor != "" {
		c, err := parseBackground(*bgColor)
		if err != nil {
			return nil, err
		}
		cfg.Background = config.Color(c)
	}
	return cfg, cfg.Validate()
}

// parseBackground accepts "R,G,B" or a hex color.
func parseBackground(s string) (render.Color, error) {
	if strings.Contains(s, ",") {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
			return 0, fmt.Errorf("invalid -bg %q: %w", s, err)
		}
		return render.FromRGB(r, g, b), nil
	}
	c, err := config.ParseColor(s)
	return render.Color(c), err
}

// newLogger builds a zap logger writing to out. An empty out discards.
func newLogger(level, encoding, out string) (*zap.Logger, error) {
	if out == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if encoding == "" {
		encoding = "console"
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         encoding,
		EncoderConfig:    enc,
		OutputPaths:      []string{out},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return cfg.Build()
}

func runSnapshot(ctx context.Context, cfg *config.Config, events *logbuf.Logger, log *zap.Logger) error {
	snap := display.NewSnapshot(*outPath, cfg.Width, cfg.Height)
	e, err := newEngine(cfg, snap, events, log)
	if err != nil {
		return err
	}
	e.bands = *bands

	dt := 1 / float64(cfg.FPS)
	for range max(*frames, 1) {
		if err := e.step(ctx, dt); err != nil {
			return errors.Join(err, e.close())
		}
	}
	log.Info("snapshot written", zap.String("out", *outPath), zap.Int("frames", snap.Frames()))
	return e.close()
}

func runWindow(ctx context.Context, cfg *config.Config, events *logbuf.Logger, log *zap.Logger) error {
	win := window.New("tepi", cfg.Width, cfg.Height, debugLogger(log))
	win.TPS = cfg.FPS

	e, err := newEngine(cfg, win, events, log)
	if err != nil {
		return err
	}
	e.bands = *bands
	win.OnKey = func(k ebiten.Key) {
		if k == ebiten.KeyX {
			e.toggleWireframe()
		}
	}

	last := time.Now()
	runErr := win.Run(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := time.Now()
		dt := min(now.Sub(last).Seconds(), 0.1)
		last = now
		return e.step(ctx, dt)
	})
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	return errors.Join(runErr, e.close())
}

func runTerminal(ctx context.Context, cfg *config.Config, events *logbuf.Logger, log *zap.Logger) error {
	term, err := display.NewTerminal()
	if err != nil {
		return err
	}
	defer term.Close()

	e, err := newEngine(cfg, display.NewDedup(term), events, log)
	if err != nil {
		return err
	}
	e.bands = *bands

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Input is handled on the frame loop; this goroutine only forwards it.
	input := make(chan uv.Event, 16)
	go func() {
		for ev := range term.Events() {
			select {
			case input <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return e.close()
		case ev := <-input:
			if handleTerminalEvent(ev, term, e, log) {
				cancel()
			}
			continue
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		if err := e.step(ctx, dt); err != nil {
			if ctx.Err() != nil {
				return e.close()
			}
			return errors.Join(fmt.Errorf("frame %d: %w", e.frame, err), e.close())
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// handleTerminalEvent applies one input event and reports whether to quit.
func handleTerminalEvent(ev uv.Event, term *display.Terminal, e *engine, log *zap.Logger) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		term.Resize(ev.Width, ev.Height)
	case uv.KeyPressEvent:
		if *debug {
			log.Debug("key pressed", zap.String("key", ev.String()))
		}
		switch {
		case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
			return true
		case ev.MatchString("x"):
			e.toggleWireframe()
		}
	}
	return false
}

func debugLogger(log *zap.Logger) *zap.Logger {
	if *debug {
		return log
	}
	return zap.NewNop()
}
