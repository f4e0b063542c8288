package curved

import "image"

// Canvas receives the primitives the editor panels are drawn with. Every
// primitive carries a depth: primitives with a higher depth are painted
// first, so a lower depth ends up on top. Primitives of equal depth are
// painted in submission order.
type Canvas interface {
	Clear()
	DrawLine(a, b image.Point, c Color, depth uint8)
	DrawPolyLine(pts []image.Point, c Color, depth uint8)
	DrawTriangleStrip(pts []image.Point, c Color, depth uint8)
	DrawText(p image.Point, s string, c Color, depth uint8)
}

// CommandType distinguishes the primitive recorded in a DrawCommand.
type CommandType uint8

const (
	CommandLine CommandType = iota
	CommandPolyLine
	CommandTriangleStrip
	CommandText
)

func (t CommandType) String() string {
	switch t {
	case CommandLine:
		return "line"
	case CommandPolyLine:
		return "polyline"
	case CommandTriangleStrip:
		return "strip"
	case CommandText:
		return "text"
	}
	return "unknown"
}

// DrawCommand is one recorded primitive. Lines store their two end points in
// Points. Text is anchored at its top-left corner, Points[0].
type DrawCommand struct {
	Type   CommandType
	Points []image.Point
	Text   string
	Color  Color
	Depth  uint8

	order int
}

// CommandCanvas is a Canvas that records primitives for later replay by a
// renderer. Point slices passed in are copied.
type CommandCanvas struct {
	commands []DrawCommand
	sortBuf  []DrawCommand
	sorted   bool
	next     int
}

// NewCommandCanvas returns an empty CommandCanvas.
func NewCommandCanvas() *CommandCanvas {
	return &CommandCanvas{sorted: true}
}

// Clear drops all recorded commands. Buffers are kept for reuse.
func (c *CommandCanvas) Clear() {
	for i := range c.commands {
		c.commands[i] = DrawCommand{}
	}
	c.commands = c.commands[:0]
	c.sorted = true
	c.next = 0
}

// DrawLine records a one pixel line from a to b.
func (c *CommandCanvas) DrawLine(a, b image.Point, col Color, depth uint8) {
	c.push(DrawCommand{Type: CommandLine, Points: []image.Point{a, b}, Color: col, Depth: depth})
}

// DrawPolyLine records a connected line through pts. Fewer than two points
// are ignored.
func (c *CommandCanvas) DrawPolyLine(pts []image.Point, col Color, depth uint8) {
	if len(pts) < 2 {
		return
	}
	c.push(DrawCommand{Type: CommandPolyLine, Points: append([]image.Point(nil), pts...), Color: col, Depth: depth})
}

// DrawTriangleStrip records a filled triangle strip. Fewer than three points
// are ignored.
func (c *CommandCanvas) DrawTriangleStrip(pts []image.Point, col Color, depth uint8) {
	if len(pts) < 3 {
		return
	}
	c.push(DrawCommand{Type: CommandTriangleStrip, Points: append([]image.Point(nil), pts...), Color: col, Depth: depth})
}

// DrawText records a text label with its top-left corner at p.
func (c *CommandCanvas) DrawText(p image.Point, s string, col Color, depth uint8) {
	c.push(DrawCommand{Type: CommandText, Points: []image.Point{p}, Text: s, Color: col, Depth: depth})
}

func (c *CommandCanvas) push(cmd DrawCommand) {
	cmd.order = c.next
	c.next++
	if n := len(c.commands); n > 0 && !commandLessOrEqual(c.commands[n-1], cmd) {
		c.sorted = false
	}
	c.commands = append(c.commands, cmd)
}

// Len returns the number of recorded commands.
func (c *CommandCanvas) Len() int { return len(c.commands) }

// Commands returns the recorded commands in paint order. The returned slice
// is owned by the canvas and is valid until the next Clear or draw call.
func (c *CommandCanvas) Commands() []DrawCommand {
	if !c.sorted {
		c.mergeSort()
		c.sorted = true
	}
	return c.commands
}

// CountByType returns how many recorded commands have type t.
func (c *CommandCanvas) CountByType(t CommandType) int {
	n := 0
	for i := range c.commands {
		if c.commands[i].Type == t {
			n++
		}
	}
	return n
}

// commandLessOrEqual orders deeper commands first and keeps submission order
// between commands of the same depth.
func commandLessOrEqual(a, b DrawCommand) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.order <= b.order
}

// mergeSort sorts c.commands in place using c.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations once the scratch buffer has grown
// to the command count.
func (c *CommandCanvas) mergeSort() {
	n := len(c.commands)
	if n <= 1 {
		return
	}
	if cap(c.sortBuf) < n {
		c.sortBuf = make([]DrawCommand, n)
	}
	c.sortBuf = c.sortBuf[:n]

	a := c.commands
	b := c.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(c.commands, c.sortBuf)
	}
}

// mergeRun merges the sorted runs src[lo:mid] and src[mid:hi] into dst.
func mergeRun(src, dst []DrawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
