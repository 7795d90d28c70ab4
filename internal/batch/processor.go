package batch

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rayprobe/internal/mathutil"
	"rayprobe/internal/postprocess"
	"rayprobe/internal/raster"
	"rayprobe/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    string // webp, png or tga
	Render    raster.Options
	Workers   int
	// KeepImages retains every rendered frame in the results, for WriteSweep.
	KeepImages bool
	Logger     *zap.Logger
}

// Result holds the outcome of one cursor sample.
type Result struct {
	Index   int
	Cursor  mathutil.Vec3
	Clear   bool
	Hits    []int
	Digest  uint64
	Image   string // path relative to OutputDir
	Reused  bool   // identical to an earlier frame, which owns the file
	Success bool
	Error   string

	img *image.NRGBA
}

var encoders = map[string]func(io.Writer, image.Image) error{
	"webp": func(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) },
	"png":  png.Encode,
	"tga":  tga.Encode,
}

// Run evaluates sc at every cursor and writes one image per distinct frame
// under OutputDir/<scene>/. Frames whose digests match an earlier frame reuse
// its file. Per-frame failures are reported in the results; the returned error
// is only set when ctx is cancelled or the configuration is unusable.
func Run(ctx context.Context, cfg Config, sc scene.Scene, cursors []mathutil.Vec3) ([]Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if _, ok := encoders[cfg.Format]; !ok {
		return nil, fmt.Errorf("batch: unknown format %q", cfg.Format)
	}
	if err := os.MkdirAll(filepath.Join(cfg.OutputDir, sc.Name), 0o755); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	total := len(cursors)
	results := make([]Result, total)
	frames := make([]scene.Frame, total)
	owner := make(map[uint64]int, total)
	var unique []int

	for i, c := range cursors {
		f := sc.Evaluate(c)
		frames[i] = f
		results[i] = Result{
			Index:  i,
			Cursor: c,
			Clear:  f.Clear,
			Hits:   f.Hits(),
			Digest: f.Digest(),
		}
		if _, dup := owner[results[i].Digest]; !dup {
			owner[results[i].Digest] = i
			unique = append(unique, i)
		}
	}

	log.Info("rendering frames",
		zap.String("scene", sc.Name),
		zap.Int("frames", total),
		zap.Int("unique", len(unique)),
		zap.Int("workers", cfg.Workers))

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("unique", len(unique)),
						zap.Float64("frames_per_sec", float64(p)/time.Since(start).Seconds()))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for _, idx := range unique {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			renderFrame(cfg, frames[idx], &results[idx])
			if !results[idx].Success {
				log.Warn("frame failed", zap.Int("index", idx), zap.String("error", results[idx].Error))
			}
			processed.Add(1)
			return nil
		})
	}
	err := g.Wait()
	close(done)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}

	for i := range results {
		first := owner[results[i].Digest]
		if first == i {
			continue
		}
		results[i].Image = results[first].Image
		results[i].Success = results[first].Success
		results[i].Error = results[first].Error
		results[i].Reused = true
		results[i].img = results[first].img
	}

	log.Info("frames written",
		zap.String("scene", sc.Name),
		zap.Duration("elapsed", time.Since(start)))

	return results, nil
}

func renderFrame(cfg Config, f scene.Frame, res *Result) {
	img := raster.RenderFrame(f, cfg.Render)

	// Post-processing: supersample downsample
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, f.Width, f.Height)
	}

	rel := filepath.Join(f.Scene, fmt.Sprintf("%03d.%s", res.Index, cfg.Format))
	if err := writeImage(filepath.Join(cfg.OutputDir, rel), img, encoders[cfg.Format]); err != nil {
		res.Error = err.Error()
		return
	}

	res.Image = filepath.ToSlash(rel)
	res.Success = true
	if cfg.KeepImages {
		res.img = img
	}
}

func writeImage(path string, img image.Image, enc func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// WriteSweep encodes every successful frame, in order, as one looping
// animated WebP. Results must come from a run with KeepImages set.
func WriteSweep(path string, results []Result, frameDuration time.Duration) error {
	ms := uint(frameDuration / time.Millisecond)
	if ms == 0 {
		ms = 1
	}

	ani := &nativewebp.Animation{BackgroundColor: 0xff000000}
	for _, r := range results {
		if r.img == nil {
			continue
		}
		ani.Images = append(ani.Images, r.img)
		ani.Durations = append(ani.Durations, ms)
		ani.Disposals = append(ani.Disposals, 0)
	}
	if len(ani.Images) == 0 {
		return fmt.Errorf("batch: sweep %s: no frames kept", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: sweep: %w", err)
	}
	if err := nativewebp.EncodeAll(f, ani, nil); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("batch: sweep %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("batch: sweep: %w", err)
	}
	return nil
}
