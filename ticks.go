package curved

import "math"

// TickStepType selects the ladder of candidate step sizes used by Ticks.
type TickStepType uint8

const (
	// TickStepTime uses steps suited for seconds: hours down to hundredths.
	TickStepTime TickStepType = iota
	// TickStepGeneric uses 5x and 1x multiples of every power of ten from 1e6
	// down to 1e-4.
	TickStepGeneric
)

// Default pixel spacing between ticks of a fully visible and of a fully faded
// tick level.
const (
	DefaultMinTickSpacing = 5.0
	DefaultMaxTickSpacing = 30.0
)

var timeTickSteps = []float64{3600, 1800, 600, 300, 60, 30, 10, 5, 1, 0.5, 0.25, 0.1, 0.05, 0.01}

var genericTickSteps = func() []float64 {
	var steps []float64
	for exp := 6; exp >= -4; exp-- {
		p := math.Pow(10, float64(exp))
		steps = append(steps, 5*p, p)
	}
	return steps
}()

// Ticks computes nested levels of evenly spaced tick marks for a value range
// drawn across a pixel span. Level 0 is the coarsest exposed level and
// has the highest strength; every following level is finer and weaker.
//
// Strength maps the pixel spacing of a level linearly from the minimum tick
// spacing (0) to the maximum (1). Levels denser than the minimum are not
// exposed, and only the finest level at or above full strength is kept
// from the coarse end.
//
// The range must not be empty and the minimum and maximum spacing must
// differ; neither is checked.
type Ticks struct {
	steps []float64

	start, end float64
	pixelSpan  float64
	minPx      float64
	maxPx      float64

	strengths []float64
	maxLevel  int
	numLevels int
}

// NewTicks creates a tick generator with the default spacing and a unit range
// over 100 pixels.
func NewTicks(stepType TickStepType) *Ticks {
	steps := timeTickSteps
	if stepType == TickStepGeneric {
		steps = genericTickSteps
	}
	t := &Ticks{
		steps:     steps,
		strengths: make([]float64, len(steps)),
		end:       1,
		pixelSpan: 100,
		minPx:     DefaultMinTickSpacing,
		maxPx:     DefaultMaxTickSpacing,
	}
	t.rebuild()
	return t
}

// SetRange sets the value range and the pixel span it is drawn over.
func (t *Ticks) SetRange(start, end, pixelSpan float64) {
	t.start = start
	t.end = end
	t.pixelSpan = pixelSpan
	t.rebuild()
}

// SetTickSpacing sets the pixel spacing at which a level is fully faded out
// (minPx) and fully visible (maxPx).
func (t *Ticks) SetTickSpacing(minPx, maxPx float64) {
	t.minPx = minPx
	t.maxPx = maxPx
	t.rebuild()
}

// NumLevels returns the number of exposed tick levels.
func (t *Ticks) NumLevels() int { return t.numLevels }

// Step returns the spacing between ticks of a level, or 0 for a level that is
// not exposed.
func (t *Ticks) Step(level int) float64 {
	if level < 0 || level >= t.numLevels {
		return 0
	}
	return t.steps[t.maxLevel+level]
}

// LevelStrength returns the visual strength of a level in [0, 1], or 0 for a
// level that is not exposed.
func (t *Ticks) LevelStrength(level int) float64 {
	if level < 0 || level >= t.numLevels {
		return 0
	}
	return clamp01(t.strengths[t.maxLevel+level])
}

// Ticks returns every multiple of the level's step from floor(start/step) to
// ceil(end/step), so the ticks just outside the range are included.
func (t *Ticks) Ticks(level int) []float64 {
	if level < 0 || level >= t.numLevels {
		return nil
	}
	step := t.steps[t.maxLevel+level]
	first := int64(math.Floor(t.start / step))
	last := int64(math.Ceil(t.end / step))

	out := make([]float64, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, float64(i)*step)
	}
	return out
}

func (t *Ticks) rebuild() {
	valueRange := t.end - t.start

	t.maxLevel = 0
	t.numLevels = 0
	i := 0
	for ; i < len(t.steps); i++ {
		spacing := t.steps[i] / valueRange * t.pixelSpan
		t.strengths[i] = (spacing - t.minPx) / (t.maxPx - t.minPx)
		if t.strengths[i] > 1 {
			t.maxLevel = i
		} else if t.strengths[i] < 0 {
			break
		}
	}
	if i > 0 {
		t.numLevels = i - t.maxLevel
	}
}
