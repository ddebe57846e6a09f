package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcore/config"
	"github.com/lixenwraith/termcore/console"
	"github.com/lixenwraith/termcore/screen"
	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/vision"
)

var (
	colorModeFlag = flag.String("color", "", "Color mode: auto, truecolor, 256, 16")
	configFlag    = flag.String("config", "", "Path to a TOML config file, watched for changes")
	debugFlag     = flag.Bool("debug", false, "Write a debug log under the log directory")
	plainFlag     = flag.Bool("plain", false, "Print the inspection to stdout and exit")
	simFlag       = flag.String("sim", "", "Simulate a deficiency: none, protan, deutan, tritan, mono")
	severityFlag  = flag.Float64("severity", 1.0, "Simulation severity in [0,1]")
	themeFlag     = flag.String("theme", "", "Built-in theme: ansi, dark, light")
)

const defaultSpec = "#FF8000"

func main() {
	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPALETTE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v\n", err)
		os.Exit(2)
	}

	if cfg.Log.Dir != "" {
		logDir = cfg.Log.Dir
	}
	if logFile := setupLogging(cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	specs := flag.Args()
	if len(specs) == 0 {
		specs = []string{defaultSpec}
	}

	if err := run(cfg, specs); err != nil {
		log.Printf("palette: %v", err)
		fmt.Fprintf(os.Stderr, "palette: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the file and environment, then applies explicitly set flags on top
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return config.Config{}, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			cfg.Color.Mode = *colorModeFlag
		case "debug":
			cfg.Log.Debug = *debugFlag
		case "sim":
			cfg.Vision.Deficiency = *simFlag
		case "severity":
			cfg.Vision.Severity = *severityFlag
		case "theme":
			cfg.Theme.Name = *themeFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg config.Config, specs []string) error {
	mode, err := cfg.ColorMode()
	if err != nil {
		return err
	}
	sim, err := cfg.Simulation()
	if err != nil {
		return err
	}
	th, err := cfg.ResolveTheme()
	if err != nil {
		return err
	}

	in, err := newInspector(specs, th, cfg.Vision.Severity)
	if err != nil {
		return err
	}

	if *plainFlag {
		state := console.New(os.Stdout,
			console.WithColorMode(mode),
			console.WithPaintBackground(cfg.Color.PaintBackground),
			console.WithSimulation(sim),
		)
		return runPlain(screen.New(state, screen.Options{Logger: log.Default()}), in)
	}

	backend := terminal.NewBackend()
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer backend.Fini()

	state := console.New(backendWriter{backend},
		console.WithColorMode(mode),
		console.WithPaintBackground(cfg.Color.PaintBackground),
		console.WithSimulation(sim),
	)
	comp := screen.New(state, screen.Options{
		SkipUnchanged: cfg.Screen.SkipUnchanged,
		Logger:        log.Default(),
		SizeFunc:      backend.Size,
	})

	if cfg.Screen.AltScreen {
		backend.Write([]byte(terminal.SeqAltScreenOn))
		defer backend.Write([]byte(terminal.SeqAltScreenOff))
	}
	backend.Write([]byte(terminal.SeqCursorHide))
	defer backend.Write([]byte(terminal.SeqReset + terminal.SeqCursorShow))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configFlag != "" {
		if err := watchConfig(ctx, *configFlag, in); err != nil {
			log.Printf("palette: config watch disabled: %v", err)
		}
	}

	comp.Push(buildScreen(comp, in))
	err = comp.Run(ctx, terminal.NewKeyReader(backend), keyHandler(comp, in))
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// runPlain writes one part per color without a screen
func runPlain(comp *screen.Compositor, in *inspector) error {
	for i, spec := range in.specs {
		part := plainPart(comp.State(), spec, in.colors[i], in.severity)
		if err := comp.Draw(spec, part); err != nil {
			return err
		}
	}
	return comp.State().ResetColors()
}

// keyHandler runs between frames on the Run goroutine, so it may touch the console state
func keyHandler(comp *screen.Compositor, in *inspector) screen.Handler {
	st := comp.State()
	return func(ev *tcell.EventKey) (bool, error) {
		switch ev.Key() {
		case tcell.KeyRight, tcell.KeyTab, tcell.KeyDown:
			in.step(1)
			return false, nil
		case tcell.KeyLeft, tcell.KeyBacktab, tcell.KeyUp:
			in.step(-1)
			return false, nil
		case tcell.KeyRune:
		default:
			return false, nil
		}

		switch ev.Rune() {
		case 'q':
			return true, nil
		case 'n', 'l':
			in.step(1)
		case 'p', 'h':
			in.step(-1)
		case 's':
			next := nextSimulation(st.Simulation(), in.snapshot().severity)
			if err := st.SetSimulation(next); err != nil {
				return false, err
			}
			log.Printf("palette: simulation %v", next)
		case '+', '=':
			in.adjustSeverity(0.1)
			return false, resimulate(st, in)
		case '-':
			in.adjustSeverity(-0.1)
			return false, resimulate(st, in)
		case 'b':
			st.SetPaintBackground(!st.PaintBackground())
		case 'm':
			st.SetColorMode(nextMode(st.ColorMode()))
			log.Printf("palette: color mode %v", st.ColorMode())
		case 'r':
			comp.Invalidate()
			st.Invalidate()
		}
		return false, nil
	}
}

// resimulate carries a severity change into an active console simulation
func resimulate(st *console.State, in *inspector) error {
	sim := st.Simulation()
	if sim.Deficiency == vision.None {
		return nil
	}
	sim.Severity = in.snapshot().severity
	return st.SetSimulation(sim)
}

// watchConfig swaps the theme whenever the config file changes
func watchConfig(ctx context.Context, path string, in *inspector) error {
	w, err := config.NewWatcher(path, os.Getenv, log.Default())
	if err != nil {
		return err
	}
	go func() {
		defer w.Close()
		w.Run(ctx, func(cfg config.Config, err error) {
			if err != nil {
				return
			}
			th, err := cfg.ResolveTheme()
			if err != nil {
				return
			}
			in.setTheme(th)
			log.Printf("palette: theme %s reloaded", th.Name())
		})
	}()
	return nil
}

// backendWriter adapts the terminal backend to io.Writer for the console state
type backendWriter struct {
	b terminal.Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
