package ebitenui

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/curved"
)

// DefaultFontSize is the label size in pixels.
const DefaultFontSize = 10

// polyLineWidth is the stroke width of curves.
const polyLineWidth = 1.5

// Renderer replays panel command lists onto an ebiten.Image. Lines go
// through vector.StrokeLine, polylines and strips through DrawTriangles32
// with a white pixel source, and text through text/v2.
type Renderer struct {
	white *ebiten.Image
	face  *text.GoTextFace

	verts []ebiten.Vertex
	inds  []uint32
}

// NewRenderer creates a renderer drawing labels in Go Regular.
func NewRenderer() (*Renderer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenui: parse font: %w", err)
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(curved.ColorWhite.RGBA())
	return &Renderer{
		white: white,
		face:  &text.GoTextFace{Source: source, Size: DefaultFontSize},
	}, nil
}

// MeasureText returns the pixel size of s in the label font.
func (r *Renderer) MeasureText(s string) (width, height float64) {
	m := r.face.Metrics()
	return text.Measure(s, r.face, m.HAscent+m.HDescent+m.HLineGap)
}

// DrawPanel draws a panel's commands into its bounds on dst. Commands are
// clipped to the bounds.
func (r *Renderer) DrawPanel(dst *ebiten.Image, p curved.Panel) {
	b := p.Bounds
	clip := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height).Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	sub := dst.SubImage(clip).(*ebiten.Image)
	origin := b.Origin()

	for _, cmd := range p.Canvas.Commands() {
		switch cmd.Type {
		case curved.CommandLine:
			r.drawLine(sub, cmd, origin)
		case curved.CommandPolyLine:
			r.drawPolyLine(sub, cmd, origin)
		case curved.CommandTriangleStrip:
			r.drawStrip(sub, cmd, origin)
		case curved.CommandText:
			r.drawText(sub, cmd, origin)
		}
	}
}

func (r *Renderer) drawLine(dst *ebiten.Image, cmd curved.DrawCommand, origin image.Point) {
	a, b := cmd.Points[0].Add(origin), cmd.Points[1].Add(origin)
	// Pixel centers keep one pixel lines crisp.
	vector.StrokeLine(dst,
		float32(a.X)+0.5, float32(a.Y)+0.5,
		float32(b.X)+0.5, float32(b.Y)+0.5,
		1, cmd.Color.RGBA(), false)
}

func (r *Renderer) drawText(dst *ebiten.Image, cmd curved.DrawCommand, origin image.Point) {
	p := cmd.Points[0].Add(origin)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	op.ColorScale.Scale(
		float32(cmd.Color.R),
		float32(cmd.Color.G),
		float32(cmd.Color.B),
		float32(cmd.Color.A),
	)
	text.Draw(dst, cmd.Text, r.face, op)
}

func (r *Renderer) vertex(x, y float64, c curved.Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
	}
}

func (r *Renderer) flush(dst *ebiten.Image) {
	if len(r.inds) > 0 {
		var op ebiten.DrawTrianglesOptions
		op.AntiAlias = true
		dst.DrawTriangles32(r.verts, r.inds, r.white, &op)
	}
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// drawStrip fills a triangle strip: triangle i is points i, i+1, i+2.
func (r *Renderer) drawStrip(dst *ebiten.Image, cmd curved.DrawCommand, origin image.Point) {
	for _, p := range cmd.Points {
		p = p.Add(origin)
		r.verts = append(r.verts, r.vertex(float64(p.X), float64(p.Y), cmd.Color))
	}
	for i := 0; i+2 < len(cmd.Points); i++ {
		v := uint32(i)
		r.inds = append(r.inds, v, v+1, v+2)
	}
	r.flush(dst)
}

// drawPolyLine strokes a polyline as a quad strip: two vertices per point
// offset along the mitered normal, two triangles per segment.
func (r *Renderer) drawPolyLine(dst *ebiten.Image, cmd curved.DrawCommand, origin image.Point) {
	pts := cmd.Points
	n := len(pts)
	halfW := polyLineWidth / 2

	at := func(i int) curved.Vec2 {
		p := pts[i].Add(origin)
		return curved.Vec2{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
	}

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(at(0), at(1))
		case n - 1:
			nx, ny = perpendicular(at(n-2), at(n-1))
		default:
			nx0, ny0 := perpendicular(at(i-1), at(i))
			nx1, ny1 := perpendicular(at(i), at(i+1))
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			// Miter, clamped to 2x at sharp corners.
			if dot := nx0*nx + ny0*ny; dot > 0.1 {
				scale := min(1/dot, 2.0)
				nx *= scale
				ny *= scale
			}
		}
		p := at(i)
		r.verts = append(r.verts,
			r.vertex(p.X+nx*halfW, p.Y+ny*halfW, cmd.Color),
			r.vertex(p.X-nx*halfW, p.Y-ny*halfW, cmd.Color),
		)
	}
	for i := 0; i < n-1; i++ {
		v := uint32(i * 2)
		r.inds = append(r.inds, v, v+1, v+2, v+1, v+3, v+2)
	}
	r.flush(dst)
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b curved.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
