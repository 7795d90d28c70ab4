package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rayprobe/internal/batch"
	"rayprobe/internal/config"
	"rayprobe/internal/live"
	"rayprobe/internal/mathutil"
	"rayprobe/internal/raster"
	"rayprobe/internal/scene"
	"rayprobe/internal/texture"
)

var CLI struct {
	Config string `help:"Path to a YAML or JSON config file." type:"existingfile"`
	Debug  bool   `help:"Whether to enable debug logging."`

	Render struct {
		Scenes      []string `arg:"" optional:"" name:"scenes" help:"Scenes to render (default: all)."`
		Output      string   `help:"Output directory (default: out)." short:"o"`
		Frames      int      `help:"Cursor samples per scene (default: 60)."`
		Supersample int      `help:"Supersampling factor (default: 2)."`
		Format      string   `help:"Frame format: webp, png or tga (default: webp)."`
		Workers     int      `help:"Number of worker goroutines (default: NumCPU)."`
		Backdrop    string   `help:"Backdrop image (PNG, JPEG, WebP or TGA)." type:"existingfile"`
		Sweep       bool     `help:"Also write an animated WebP of each sweep."`
	} `cmd:"" help:"Render cursor sweeps of scenes to image files."`

	Serve struct {
		Listen string `help:"Listen address (default: :8080)."`
	} `cmd:"" help:"Serve the live pointer feed over WebSocket."`

	Probe struct {
		Scene string  `help:"Scene to evaluate." default:"line-vs-sphere"`
		X     float64 `help:"Cursor x." required:""`
		Y     float64 `help:"Cursor y." required:""`
	} `cmd:"" help:"Evaluate one cursor position and print the verdict."`

	Scenes struct{} `cmd:"" help:"List the configured scenes."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

func newLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          "console",
		EncoderConfig:     enc,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: !debug,
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rayprobe"),
		kong.Description("segment vs sphere line-of-sight probe"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	log := newLogger(CLI.Debug)
	defer log.Sync()

	// Load config
	var cfg config.Config
	if CLI.Config != "" {
		var err error
		cfg, err = config.Load(CLI.Config)
		if err != nil {
			writeError(err)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   CLI.Render.Output,
		Backdrop:    CLI.Render.Backdrop,
		Frames:      CLI.Render.Frames,
		Supersample: CLI.Render.Supersample,
		Format:      CLI.Render.Format,
		Workers:     CLI.Render.Workers,
		Listen:      CLI.Serve.Listen,
	})
	if CLI.Render.Sweep {
		cfg.Sweep = true
	}
	if err := cfg.Validate(); err != nil {
		writeError(err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch ctx.Command() {
	case "render", "render <scenes>":
		err = renderCommand(runCtx, log, cfg, CLI.Render.Scenes)
	case "serve":
		err = live.NewServer(live.Config{Scenes: cfg.Scenes, Logger: log}).Serve(runCtx, cfg.Listen)
	case "probe":
		err = probeCommand(cfg, CLI.Probe.Scene, mathutil.V3(CLI.Probe.X, CLI.Probe.Y, 0))
	case "scenes":
		for _, s := range cfg.Scenes {
			fmt.Printf("%-20s %dx%d  follow=%s  obstacles=%d\n", s.Name, s.Width, s.Height, s.Follow, len(s.Obstacles))
		}
	}
	if err != nil {
		stop()
		log.Sync()
		writeError(err)
	}
}

func renderCommand(ctx context.Context, log *zap.Logger, cfg config.Config, names []string) error {
	selected := cfg.Scenes
	if len(names) > 0 {
		selected = nil
		for _, n := range names {
			sc, ok := scene.Lookup(cfg.Scenes, n)
			if !ok {
				return fmt.Errorf("unknown scene %q (have %v)", n, scene.Names(cfg.Scenes))
			}
			selected = append(selected, sc)
		}
	}

	fmt.Printf("Scenes: %d, Frames: %d, Workers: %d\n", len(selected), cfg.Frames, cfg.Workers)
	fmt.Printf("Output: %s (%s, %dx supersample)\n", cfg.OutputDir, cfg.Format, cfg.Supersample)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	var failed []batch.Result
	backdrops := texture.NewCache()

	for _, sc := range selected {
		opts := raster.Options{
			Supersample:  cfg.Supersample,
			LineWidth:    cfg.LineWidth,
			OutlineWidth: cfg.OutlineWidth,
		}
		if cfg.Backdrop != "" {
			bg, err := backdrops.Backdrop(cfg.Backdrop, sc.Width*cfg.Supersample, sc.Height*cfg.Supersample)
			if err != nil {
				return err
			}
			opts.Backdrop = bg
		}

		results, err := batch.Run(ctx, batch.Config{
			OutputDir:  cfg.OutputDir,
			Format:     cfg.Format,
			Render:     opts,
			Workers:    cfg.Workers,
			KeepImages: cfg.Sweep,
			Logger:     log.With(zap.String("scene", sc.Name)),
		}, sc, sc.Cursors(cfg.Frames))
		if err != nil {
			return err
		}

		manifest := batch.NewManifest(sc, cfg.Format, results)
		if err := batch.WriteManifest(filepath.Join(cfg.OutputDir, sc.Name, "manifest.json"), manifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		if cfg.Sweep {
			if err := batch.WriteSweep(filepath.Join(cfg.OutputDir, sc.Name+".webp"), results, cfg.FrameDuration.Std()); err != nil {
				return err
			}
		}

		success, clearCount := 0, 0
		for _, r := range results {
			if r.Success {
				success++
			} else {
				failed = append(failed, r)
			}
			if r.Clear {
				clearCount++
			}
		}
		fmt.Printf("%-20s rendered %d/%d, clear %d, run %s\n", sc.Name, success, len(results), clearCount, manifest.RunID)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(20, len(failed))] {
			fmt.Printf("  [%d] %s\n", r.Index, r.Error)
		}
		return errors.New("some frames failed")
	}
	return nil
}

func probeCommand(cfg config.Config, name string, cursor mathutil.Vec3) error {
	sc, ok := scene.Lookup(cfg.Scenes, name)
	if !ok {
		return fmt.Errorf("unknown scene %q (have %v)", name, scene.Names(cfg.Scenes))
	}

	f := sc.Evaluate(cursor)
	verdict := "clear"
	if !f.Clear {
		verdict = "blocked"
	}
	fmt.Printf("%s: %v -> %v %s\n", f.Scene, f.Start, f.Target, verdict)

	axis := f.Target.Sub(f.Start)
	for i, o := range f.Obstacles {
		line := fmt.Sprintf("  [%d] center=%v r=%g hit=%t projected=%v", i, o.Center, o.Radius, o.Hit, o.Projected)
		if a, err := mathutil.Angle(o.Center.Sub(f.Start), axis); err == nil {
			line += fmt.Sprintf(" angle=%.1f°", mathutil.Rad2Deg(a))
		}
		fmt.Println(line)
	}
	return nil
}
