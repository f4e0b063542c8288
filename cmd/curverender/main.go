// Command curverender renders the curves of stored animation clips to PNG.
//
// Usage:
//
//	curverender -lib clips -out renders [-config editor.yaml] [-clip walk,run]
//
// Each clip is loaded from the library directory with its tangent metadata,
// laid out in a curve editor sized to fit all keys, and written to
// <out>/<clip>.png. Clips render concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/curved"
	"github.com/phanxgames/curved/ggrender"
)

func main() {
	libPtr := flag.String("lib", "clips", "clip library directory")
	outPtr := flag.String("out", "renders", "output directory")
	configPtr := flag.String("config", "", "editor config YAML (optional)")
	clipPtr := flag.String("clip", "", "comma separated clip names (default: every clip in -lib)")
	widthPtr := flag.Int("width", 0, "image width (overrides config)")
	heightPtr := flag.Int("height", 0, "image height (overrides config)")
	framePtr := flag.Int("frame", -1, "frame to mark, -1 for none")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "clips rendered in parallel")
	verbosePtr := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbosePtr {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	curved.SetLogger(logger)

	cfg := curved.DefaultConfig()
	if *configPtr != "" {
		var err error
		if cfg, err = curved.LoadConfig(*configPtr); err != nil {
			logger.Error("config", slog.Any("error", err))
			os.Exit(1)
		}
	}
	if *widthPtr > 0 {
		cfg.Width = *widthPtr
	}
	if *heightPtr > 0 {
		cfg.Height = *heightPtr
	}

	lib := curved.Library{Dir: *libPtr}
	names, err := clipNames(lib, *clipPtr)
	if err != nil {
		logger.Error("list clips", slog.Any("error", err))
		os.Exit(1)
	}
	if len(names) == 0 {
		logger.Warn("no clips found", slog.String("lib", *libPtr))
		return
	}
	if err := os.MkdirAll(*outPtr, 0o755); err != nil {
		logger.Error("output dir", slog.Any("error", err))
		os.Exit(1)
	}

	job := renderJob{lib: lib, cfg: cfg, outDir: *outPtr, frame: *framePtr}
	if err := renderAll(context.Background(), job, names, *workersPtr); err != nil {
		logger.Error("render", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("done", slog.Int("clips", len(names)), slog.String("out", *outPtr))
}

func clipNames(lib curved.Library, list string) ([]string, error) {
	if list == "" {
		return lib.List()
	}
	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

type renderJob struct {
	lib    curved.Library
	cfg    curved.Config
	outDir string
	frame  int
}

// renderAll renders every clip with at most workers in flight. The first
// failure cancels clips not yet started.
func renderAll(ctx context.Context, job renderJob, names []string, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return job.render(name)
		})
	}
	return g.Wait()
}

func (j renderJob) render(name string) error {
	info, err := j.lib.Load(name)
	if err != nil {
		return err
	}

	// One renderer per clip; font faces are not shared across goroutines.
	r, err := ggrender.NewRenderer(0)
	if err != nil {
		return err
	}

	ed := curved.NewEditor(j.cfg, nil)
	ed.SetClip(info)
	fitView(ed, info.Curves())
	ed.SetMarkedFrame(j.frame)

	path := filepath.Join(j.outDir, name+".png")
	if err := r.SavePNG(ed, path); err != nil {
		return fmt.Errorf("clip %s: %w", name, err)
	}
	curved.Logger().Info("rendered", slog.String("clip", name), slog.String("path", path))
	return nil
}

// fitView sets the editor range and offset so every key is visible with a
// margin.
func fitView(ed *curved.Editor, curves []curved.CurveInfo) {
	maxT := 0.0
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, ci := range curves {
		for _, k := range ci.Curve.Keyframes() {
			maxT = max(maxT, k.Time)
			minV = min(minV, k.Value)
			maxV = max(maxV, k.Value)
		}
	}
	if math.IsInf(minV, 1) {
		return
	}
	half := max((maxV-minV)/2*1.2, 0.5)
	ed.SetRange(max(maxT*1.1, 1), half)
	ed.SetOffset(curved.Vec2{X: 0, Y: (minV + maxV) / 2})
}
