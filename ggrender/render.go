// Package ggrender renders curved editor panels with gg, without a window.
// It backs the curverender CLI and golden-image style checks.
package ggrender

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/curved"
)

// DefaultFontSize is the label size in pixels.
const DefaultFontSize = 10

// Stroke widths in pixels.
const (
	lineWidth     = 1.0
	polyLineWidth = 1.5
)

// Renderer replays command lists onto a gg.Context.
type Renderer struct {
	face text.Face
}

// NewRenderer creates a renderer drawing labels in Go Regular at size
// pixels. A size of zero selects DefaultFontSize.
func NewRenderer(size float64) (*Renderer, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ggrender: parse font: %w", err)
	}
	return &Renderer{face: source.Face(size)}, nil
}

// Render draws panels over a background into a new context of the given
// size. The caller owns the context and must Close it.
func (r *Renderer) Render(width, height int, bg curved.Color, panels []curved.Panel) (*gg.Context, error) {
	start := time.Now()
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A})
	dc.SetFont(r.face)

	var errs []error
	for _, p := range panels {
		if err := r.DrawPanel(dc, p); err != nil {
			errs = append(errs, fmt.Errorf("panel %s: %w", p.Name, err))
		}
	}
	curved.Logger().Debug("ggrender frame",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("panels", len(panels)),
		slog.Duration("time", time.Since(start)))
	return dc, errors.Join(errs...)
}

// RenderEditor draws every panel of ed at its current size.
func (r *Renderer) RenderEditor(ed *curved.Editor) (*gg.Context, error) {
	w, h := ed.Size()
	return r.Render(w, h, ed.Style().Background, ed.Panels())
}

// SavePNG renders ed and writes it to path.
func (r *Renderer) SavePNG(ed *curved.Editor, path string) error {
	dc, err := r.RenderEditor(ed)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("ggrender: save %s: %w", path, err)
	}
	return nil
}

// EncodePNG renders ed and writes it to w as PNG.
func (r *Renderer) EncodePNG(ed *curved.Editor, w io.Writer) error {
	dc, err := r.RenderEditor(ed)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("ggrender: encode: %w", err)
	}
	return nil
}

// Image renders ed and returns a copy of the pixels.
func (r *Renderer) Image(ed *curved.Editor) (*image.NRGBA, error) {
	dc, err := r.RenderEditor(ed)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	src := dc.Image()
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img, nil
}

// DrawPanel replays a panel's commands, clipped to its bounds.
func (r *Renderer) DrawPanel(dc *gg.Context, p curved.Panel) error {
	b := p.Bounds
	dc.Push()
	defer dc.Pop()
	dc.ClipRect(float64(b.X), float64(b.Y), float64(b.Width), float64(b.Height))

	origin := b.Origin()
	var errs []error
	for _, cmd := range p.Canvas.Commands() {
		if err := r.drawCommand(dc, cmd, origin); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cmd.Type, err))
		}
	}
	return errors.Join(errs...)
}

// at returns the pixel center of a panel-local point.
func at(p, origin image.Point) (float64, float64) {
	p = p.Add(origin)
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

func (r *Renderer) drawCommand(dc *gg.Context, cmd curved.DrawCommand, origin image.Point) error {
	c := cmd.Color
	dc.SetRGBA(c.R, c.G, c.B, c.A)

	switch cmd.Type {
	case curved.CommandLine:
		dc.SetLineWidth(lineWidth)
		dc.MoveTo(at(cmd.Points[0], origin))
		dc.LineTo(at(cmd.Points[1], origin))
		return dc.Stroke()

	case curved.CommandPolyLine:
		dc.SetLineWidth(polyLineWidth)
		dc.MoveTo(at(cmd.Points[0], origin))
		for _, p := range cmd.Points[1:] {
			dc.LineTo(at(p, origin))
		}
		return dc.Stroke()

	case curved.CommandTriangleStrip:
		pts := cmd.Points
		for i := 0; i+2 < len(pts); i++ {
			dc.MoveTo(at(pts[i], origin))
			dc.LineTo(at(pts[i+1], origin))
			dc.LineTo(at(pts[i+2], origin))
			dc.ClosePath()
		}
		return dc.Fill()

	case curved.CommandText:
		p := cmd.Points[0].Add(origin)
		// Commands anchor text at its top-left; gg draws on the baseline.
		dc.DrawString(cmd.Text, float64(p.X), float64(p.Y)+r.face.Metrics().Ascent)
	}
	return nil
}
