package ebitenui

import (
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/curved"
)

// captureFrame reads the rendered frame back as straight-alpha NRGBA.
func captureFrame(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// flushScreenshots saves the frame for every screenshot queued on the
// editor. Called at the end of Draw.
func flushScreenshots(ed *curved.Editor, screen *ebiten.Image) {
	if !ed.ScreenshotPending() {
		return
	}
	paths, err := ed.SaveScreenshots(captureFrame(screen))
	if err != nil {
		curved.Logger().Warn("screenshot", slog.Any("error", err))
	}
	for _, p := range paths {
		curved.Logger().Debug("screenshot saved", slog.String("path", p))
	}
}
