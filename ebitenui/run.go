// Package ebitenui runs a curved.Editor in an Ebitengine window.
//
// The simplest way in is [Run]:
//
//	host := ebitenui.NewOverlayHost(cfg.Style)
//	ed := curved.NewEditor(cfg, host)
//	ebitenui.Run(ed, ebitenui.RunConfig{Title: "Curves", Host: host})
//
// For full control, create a [Game] with [NewGame] and hand it to
// ebiten.RunGame, or embed it in your own ebiten.Game.
package ebitenui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/curved"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height are the initial window size. Zero keeps the editor's
	// size.
	Width, Height int
	ShowFPS       bool
	// Host presents the editor's menus and forms. It should be the host the
	// editor was created with; nil leaves menus and forms undrawn.
	Host *OverlayHost
	// ExitWhenTestDone closes the window once an attached test runner has
	// finished.
	ExitWhenTestDone bool
}

// Game is an ebiten.Game driving one editor.
type Game struct {
	ed       *curved.Editor
	host     *OverlayHost
	renderer *Renderer
	pointer  pointerState
	fps      *fpsOverlay
	cfg      RunConfig
}

// NewGame creates the ebiten.Game for an editor.
func NewGame(ed *curved.Editor, cfg RunConfig) (*Game, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	g := &Game{ed: ed, host: cfg.Host, renderer: r, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ed.SetSize(cfg.Width, cfg.Height)
	}
	return g, nil
}

// Run opens a window showing ed and blocks until it is closed.
func Run(ed *curved.Editor, cfg RunConfig) error {
	g, err := NewGame(ed, cfg)
	if err != nil {
		return err
	}
	w, h := ed.Size()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	curved.Logger().Info("window opened", slog.String("title", cfg.Title), slog.Int("width", w), slog.Int("height", h))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebitenui: run: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1 / float32(ebiten.TPS())
	if g.fps != nil {
		g.fps.update(float64(dt))
	}
	if g.host != nil {
		g.host.update(float64(dt))
	}

	if g.ed.Update(dt) {
		return g.checkDone()
	}

	mods := readModifiers()
	ev, kind, ok := g.pointer.pollPointer(mods)

	switch {
	case g.host != nil && g.host.form != nil:
		g.host.handleFormKeys(mods)
	case g.host != nil && g.host.menuOpen:
		if ok && kind == transitionPress {
			if path := g.host.handlePointer(ev); path != "" {
				g.ed.InvokeMenu(path)
			}
		}
	default:
		if ok {
			dispatch(g.ed, ev, kind)
		}
		processKeys(g.ed, mods)
		processWheel(g.ed, mods)
	}
	return g.checkDone()
}

func (g *Game) checkDone() error {
	if g.cfg.ExitWhenTestDone && g.ed.TestDone() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.ed.Style().Background.RGBA())
	for _, p := range g.ed.Panels() {
		g.renderer.DrawPanel(screen, p)
	}
	if g.host != nil {
		w, h := g.ed.Size()
		g.renderer.DrawPanel(screen, g.host.Panel(w, h))
	}
	flushScreenshots(g.ed, screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The editor is resized to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.ed.Size(); w != outsideWidth || h != outsideHeight {
		g.ed.SetSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
