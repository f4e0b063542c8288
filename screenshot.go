package curved

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot. The renderer driving the editor
// captures the next frame it draws and passes it to SaveScreenshots.
func (e *Editor) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// ScreenshotPending reports whether screenshots are queued.
func (e *Editor) ScreenshotPending() bool { return len(e.screenshotQueue) > 0 }

// SaveScreenshots writes img as a PNG for every queued label into the
// configured screenshot directory, with timestamped file names, and clears
// the queue. It returns the written paths.
func (e *Editor) SaveScreenshots(img image.Image) ([]string, error) {
	if len(e.screenshotQueue) == 0 {
		return nil, nil
	}
	defer func() { e.screenshotQueue = e.screenshotQueue[:0] }()

	dir := e.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Warn("screenshot mkdir failed", slog.String("dir", dir), slog.Any("error", err))
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}

	stamp := time.Now().Format("20060102_150405")
	var (
		paths []string
		errs  []error
	)
	for _, label := range e.screenshotQueue {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Warn("screenshot failed", slog.String("path", path), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
