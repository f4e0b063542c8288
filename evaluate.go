package curved

import (
	"math"
	"sort"
)

// Evaluator samples a keyframed curve. Implementations may keep per-segment
// caches; SetKeyframes invalidates them.
type Evaluator interface {
	SetKeyframes(keys []Keyframe)
	Evaluate(t float64, loop bool) float64
}

// minSegmentLength is the shortest segment that is interpolated. Shorter
// segments return the value of their left key.
const minSegmentLength = 1e-6

// HermiteEvaluator evaluates curves as piecewise cubic Hermite splines.
// Tangents are slopes in value per unit of time. A segment whose left out
// tangent or right in tangent is a step holds the left key's value.
//
// The evaluator caches the polynomial of the last sampled segment, so
// sequential sampling (as done when drawing) avoids a key search per sample.
// It is not safe for concurrent use.
type HermiteEvaluator struct {
	keys []Keyframe

	cacheStart float64
	cacheEnd   float64
	coeffs     [4]float64
}

// NewHermiteEvaluator returns an evaluator over a copy of keys. Keys must be
// sorted by time.
func NewHermiteEvaluator(keys []Keyframe) *HermiteEvaluator {
	e := &HermiteEvaluator{}
	e.SetKeyframes(keys)
	return e
}

// SetKeyframes replaces the evaluated keys and drops the segment cache.
func (e *HermiteEvaluator) SetKeyframes(keys []Keyframe) {
	e.keys = append(e.keys[:0], keys...)
	e.cacheStart = math.Inf(1)
	e.cacheEnd = math.Inf(-1)
}

// Start returns the time of the first key, or 0 for an empty curve.
func (e *HermiteEvaluator) Start() float64 {
	if len(e.keys) == 0 {
		return 0
	}
	return e.keys[0].Time
}

// End returns the time of the last key, or 0 for an empty curve.
func (e *HermiteEvaluator) End() float64 {
	if len(e.keys) == 0 {
		return 0
	}
	return e.keys[len(e.keys)-1].Time
}

// Evaluate returns the curve value at t. Outside the key range the value is
// clamped to the end keys, or t is wrapped into the range when loop is set.
// An empty curve evaluates to 0.
func (e *HermiteEvaluator) Evaluate(t float64, loop bool) float64 {
	n := len(e.keys)
	if n == 0 {
		return 0
	}
	start, end := e.Start(), e.End()
	length := end - start
	if length < minSegmentLength {
		return e.keys[0].Value
	}

	if loop {
		t = start + math.Mod(t-start, length)
		if t < start {
			t += length
		}
	}

	if t >= e.cacheStart && t < e.cacheEnd {
		return evalCubic(e.coeffs, t-e.cacheStart)
	}

	if t < start {
		e.cacheStart, e.cacheEnd = math.Inf(-1), start
		e.coeffs = [4]float64{0, 0, 0, e.keys[0].Value}
		return e.keys[0].Value
	}
	if t >= end {
		e.cacheStart, e.cacheEnd = end, math.Inf(1)
		e.coeffs = [4]float64{0, 0, 0, e.keys[n-1].Value}
		return e.keys[n-1].Value
	}

	// First key with a time greater than t; t < end guarantees 1 <= right < n.
	right := sort.Search(n, func(i int) bool { return e.keys[i].Time > t })
	lhs, rhs := e.keys[right-1], e.keys[right]

	e.cacheStart, e.cacheEnd = lhs.Time, rhs.Time
	e.coeffs = segmentCoefficients(lhs, rhs)
	return evalCubic(e.coeffs, t-lhs.Time)
}

// segmentCoefficients returns the cubic a*x^3 + b*x^2 + c*x + d, with x the
// time elapsed since lhs, that interpolates the segment lhs..rhs.
func segmentCoefficients(lhs, rhs Keyframe) [4]float64 {
	length := rhs.Time - lhs.Time
	if length < minSegmentLength || IsStep(lhs.OutTangent) || IsStep(rhs.InTangent) {
		return [4]float64{0, 0, 0, lhs.Value}
	}
	slope := (rhs.Value - lhs.Value) / length
	m0, m1 := lhs.OutTangent, rhs.InTangent
	return [4]float64{
		(m0 + m1 - 2*slope) / (length * length),
		(3*slope - 2*m0 - m1) / length,
		m0,
		lhs.Value,
	}
}

func evalCubic(c [4]float64, x float64) float64 {
	return x*(x*(x*c[0]+c[1])+c[2]) + c[3]
}
