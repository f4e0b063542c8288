package ebitenui

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/curved"
)

// Overlay layout, in pixels.
const (
	menuItemHeight = 16
	menuWidth      = 140
	formRowHeight  = 16
	formWidth      = 260
	messageTTL     = 3.0 // seconds
)

// Overlay draw depths. The overlay is its own panel, drawn last.
const (
	depthOverlayBack uint8 = 20
	depthOverlayText uint8 = 10
)

// OverlayHost is a curved.Host that draws menus, forms and messages over the
// editor. Menus are a flat list of entry paths. Forms are edited with the
// keyboard: Up/Down pick a field, Left/Right nudge numbers and enums (Shift
// for larger steps), typing edits strings, Enter applies and Escape cancels.
type OverlayHost struct {
	width, height int
	style         curved.Style

	menu     []curved.MenuItem
	menuOpen bool
	menuPos  image.Point

	form    *curved.Form
	apply   func(*curved.Form) error
	field   int
	formErr string

	message    string
	messageAge float64

	canvas *curved.CommandCanvas
}

// NewOverlayHost creates a host for an editor of the given style.
func NewOverlayHost(style curved.Style) *OverlayHost {
	return &OverlayHost{style: style, canvas: curved.NewCommandCanvas()}
}

// OpenMenu implements curved.Host.
func (h *OverlayHost) OpenMenu(p image.Point, menu *curved.ContextMenu) {
	h.menu = menu.Items()
	h.menuPos = p
	h.menuOpen = true
}

// OpenForm implements curved.Host.
func (h *OverlayHost) OpenForm(form *curved.Form, apply func(*curved.Form) error) {
	h.form = form
	h.apply = apply
	h.field = 0
	h.formErr = ""
	h.menuOpen = false
}

// ShowMessage implements curved.Host.
func (h *OverlayHost) ShowMessage(title, text string) {
	h.message = title + ": " + text
	h.messageAge = 0
}

// Busy reports whether a menu or form is capturing input.
func (h *OverlayHost) Busy() bool { return h.menuOpen || h.form != nil }

func (h *OverlayHost) menuRect(i int) image.Rectangle {
	x := min(h.menuPos.X, max(h.width-menuWidth, 0))
	y := h.menuPos.Y + i*menuItemHeight
	return image.Rect(x, y, x+menuWidth, y+menuItemHeight)
}

// handlePointer consumes a pointer press while the menu is open. It returns
// the picked entry path, or "" when the press closed the menu without a pick.
func (h *OverlayHost) handlePointer(ev curved.PointerEvent) string {
	h.menuOpen = false
	for i, it := range h.menu {
		if ev.Pos.In(h.menuRect(i)) {
			return it.Path
		}
	}
	return ""
}

// handleFormKeys edits the open form from keyboard input.
func (h *OverlayHost) handleFormKeys(mods curved.KeyModifiers) {
	f := h.form
	if len(f.Fields) == 0 || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.closeForm()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := h.apply(f); err != nil {
			curved.Logger().Warn("form rejected", slog.String("form", f.Title), slog.Any("error", err))
			h.formErr = err.Error()
			return
		}
		h.closeForm()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		h.field = (h.field + 1) % len(f.Fields)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		h.field = (h.field + len(f.Fields) - 1) % len(f.Fields)
	}

	step := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		step = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		step = -1
	}
	fl := f.Fields[h.field]
	v := nudge(fl.Value, step, mods&curved.ModShift != 0)
	if s, ok := v.Text(); ok {
		v = curved.StringValue(editString(s))
	}
	if err := f.Set(fl.Name, v); err != nil {
		h.formErr = err.Error()
	}
}

func (h *OverlayHost) closeForm() {
	h.form = nil
	h.apply = nil
}

// nudge steps a numeric or enum value.
func nudge(v curved.FieldValue, step int, coarse bool) curved.FieldValue {
	if step == 0 {
		return v
	}
	amount := 0.1
	if coarse {
		amount = 1
	}
	switch v.Type {
	case curved.FieldFloat:
		x, _ := v.Float()
		return curved.FloatValue(x + float64(step)*amount)
	case curved.FieldInt:
		x, _ := v.Int()
		return curved.IntValue(x + step)
	case curved.FieldBool:
		b, _ := v.Bool()
		return curved.BoolValue(!b)
	case curved.FieldEnum:
		idx, _, _ := v.Enum()
		n := len(v.Options())
		if n == 0 {
			return v
		}
		return curved.EnumValue((idx+step+n)%n, v.Options())
	}
	return v
}

// editString applies this frame's typed characters and Backspace to s.
func editString(s string) string {
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && s != "" {
		r := []rune(s)
		s = string(r[:len(r)-1])
	}
	return string(ebiten.AppendInputChars([]rune(s)))
}

// update ages the message.
func (h *OverlayHost) update(dt float64) {
	if h.message == "" {
		return
	}
	h.messageAge += dt
	if h.messageAge > messageTTL {
		h.message = ""
	}
}

// Panel rebuilds and returns the overlay panel covering the window.
func (h *OverlayHost) Panel(width, height int) curved.Panel {
	h.width, h.height = width, height
	c := h.canvas
	c.Clear()

	if h.menuOpen {
		for i, it := range h.menu {
			r := h.menuRect(i)
			fillRect(c, r, h.style.Sidebar, depthOverlayBack)
			c.DrawText(image.Pt(r.Min.X+4, r.Min.Y+2), it.Path, h.style.Text, depthOverlayText)
		}
	}

	if f := h.form; f != nil {
		rows := len(f.Fields) + 2
		x := max((width-formWidth)/2, 0)
		y := max((height-rows*formRowHeight)/2, 0)
		fillRect(c, image.Rect(x, y, x+formWidth, y+rows*formRowHeight), h.style.Sidebar, depthOverlayBack)
		c.DrawText(image.Pt(x+4, y+2), f.Title, h.style.Text, depthOverlayText)
		for i, fl := range f.Fields {
			col := h.style.Text
			if i == h.field {
				col = h.style.KeyframeActive
			}
			line := fmt.Sprintf("%s: %s", fl.Name, formatValue(fl.Value))
			c.DrawText(image.Pt(x+4, y+(i+1)*formRowHeight+2), line, col, depthOverlayText)
		}
		if h.formErr != "" {
			c.DrawText(image.Pt(x+4, y+(rows-1)*formRowHeight+2), h.formErr, h.style.FrameMarker, depthOverlayText)
		}
	}

	if h.message != "" {
		c.DrawText(image.Pt(4, height-formRowHeight), h.message, h.style.FrameMarker, depthOverlayText)
	}

	return curved.Panel{Name: "overlay", Bounds: curved.Rect{Width: width, Height: height}, Canvas: c}
}

// fillRect fills r with two triangles.
func fillRect(c curved.Canvas, r image.Rectangle, col curved.Color, depth uint8) {
	c.DrawTriangleStrip([]image.Point{
		r.Min,
		image.Pt(r.Max.X, r.Min.Y),
		image.Pt(r.Min.X, r.Max.Y),
		r.Max,
	}, col, depth)
}

func formatValue(v curved.FieldValue) string {
	switch v.Type {
	case curved.FieldFloat:
		x, _ := v.Float()
		return fmt.Sprintf("%.3f", x)
	case curved.FieldInt:
		x, _ := v.Int()
		return fmt.Sprint(x)
	case curved.FieldBool:
		b, _ := v.Bool()
		return fmt.Sprint(b)
	case curved.FieldString:
		s, _ := v.Text()
		return s
	case curved.FieldEnum:
		_, opt, _ := v.Enum()
		return "< " + opt + " >"
	}
	if comps, n, ok := v.Vector(); ok {
		parts := make([]string, n)
		for i := range n {
			parts[i] = fmt.Sprintf("%.3f", comps[i])
		}
		return strings.Join(parts, ", ")
	}
	return v.Type.String()
}
