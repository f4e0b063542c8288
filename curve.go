package curved

import (
	"math"
	"sort"
)

// approxZero is the tolerance below which a time difference between keys is
// treated as zero when deriving slopes.
const approxZero = 1.192092896e-07

// Curve is an editable keyframed curve. It keeps a tangent mode per key and
// pushes finalized keys into an Evaluator on Apply.
//
// Edits (AddKeyframe, UpdateKeyframe, ...) change the keys directly; call
// Apply once an edit is complete to re-sort the keys, recompute derived
// tangents and refresh the evaluator.
type Curve struct {
	keys  []Keyframe
	modes []TangentMode
	eval  Evaluator
}

// NewCurve creates a curve evaluated with a HermiteEvaluator. modes is padded
// with Auto or truncated to match keys.
func NewCurve(keys []Keyframe, modes []TangentMode) *Curve {
	return NewCurveWithEvaluator(&HermiteEvaluator{}, keys, modes)
}

// NewCurveWithEvaluator creates a curve backed by a custom evaluator.
func NewCurveWithEvaluator(eval Evaluator, keys []Keyframe, modes []TangentMode) *Curve {
	c := &Curve{
		keys:  append([]Keyframe(nil), keys...),
		modes: make([]TangentMode, len(keys)),
		eval:  eval,
	}
	copy(c.modes, modes)
	c.Apply()
	return c
}

// Keyframes returns the keys. The slice is owned by the curve and must not be
// modified.
func (c *Curve) Keyframes() []Keyframe { return c.keys }

// TangentModes returns the per-key tangent modes, parallel to Keyframes.
func (c *Curve) TangentModes() []TangentMode { return c.modes }

// Len returns the number of keys.
func (c *Curve) Len() int { return len(c.keys) }

// Keyframe returns the key at index i.
func (c *Curve) Keyframe(i int) (Keyframe, bool) {
	if i < 0 || i >= len(c.keys) {
		return Keyframe{}, false
	}
	return c.keys[i], true
}

// TangentMode returns the tangent mode of key i, or Auto when out of range.
func (c *Curve) TangentMode(i int) TangentMode {
	if i < 0 || i >= len(c.modes) {
		return TangentAuto
	}
	return c.modes[i]
}

// Evaluate samples the curve as of the last Apply.
func (c *Curve) Evaluate(t float64, loop bool) float64 {
	return c.eval.Evaluate(t, loop)
}

// AddKeyframe inserts an Auto key and returns its index.
func (c *Curve) AddKeyframe(t, v float64) int {
	return c.AddKeyframeMode(t, v, TangentAuto)
}

// AddKeyframeMode inserts a key before the first key with a strictly greater
// time, so a key added at an existing time lands after it. Returns the index.
func (c *Curve) AddKeyframeMode(t, v float64, mode TangentMode) int {
	idx := len(c.keys)
	for i := range c.keys {
		if t < c.keys[i].Time {
			idx = i
			break
		}
	}

	c.keys = append(c.keys, Keyframe{})
	copy(c.keys[idx+1:], c.keys[idx:])
	c.keys[idx] = Keyframe{Time: t, Value: v}

	c.modes = append(c.modes, TangentAuto)
	copy(c.modes[idx+1:], c.modes[idx:])
	c.modes[idx] = mode
	return idx
}

// RemoveKeyframe deletes key i. Out-of-range indices are ignored.
func (c *Curve) RemoveKeyframe(i int) {
	if i < 0 || i >= len(c.keys) {
		return
	}
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	c.modes = append(c.modes[:i], c.modes[i+1:]...)
}

// UpdateKeyframe sets the time and value of key i and moves it so the keys
// stay ordered by time. Returns the key's new index, or -1 when i is out of
// range.
func (c *Curve) UpdateKeyframe(i int, t, v float64) int {
	if i < 0 || i >= len(c.keys) {
		return -1
	}
	c.keys[i].Time = t
	c.keys[i].Value = v

	cur := i
	for cur > 0 && t < c.keys[cur-1].Time {
		c.swap(cur, cur-1)
		cur--
	}
	for cur < len(c.keys)-1 && t > c.keys[cur+1].Time {
		c.swap(cur, cur+1)
		cur++
	}
	return cur
}

func (c *Curve) swap(i, j int) {
	c.keys[i], c.keys[j] = c.keys[j], c.keys[i]
	c.modes[i], c.modes[j] = c.modes[j], c.modes[i]
}

// SetKeyframe replaces all data of key i, tangents included. It does not
// reorder keys. Out-of-range indices are ignored.
func (c *Curve) SetKeyframe(i int, k Keyframe) {
	if i < 0 || i >= len(c.keys) {
		return
	}
	c.keys[i] = k
}

// SetTangentMode sets the tangent mode of key i. Out-of-range indices are
// ignored.
func (c *Curve) SetTangentMode(i int, mode TangentMode) {
	if i < 0 || i >= len(c.modes) {
		return
	}
	c.modes[i] = mode
}

// Apply sorts the keys by time, recomputes tangents that are derived from
// tangent modes and refreshes the evaluator.
func (c *Curve) Apply() {
	sort.Stable(byTime{c})
	c.updateTangents()
	c.eval.SetKeyframes(c.keys)
}

type byTime struct{ c *Curve }

func (b byTime) Len() int           { return len(b.c.keys) }
func (b byTime) Less(i, j int) bool { return b.c.keys[i].Time < b.c.keys[j].Time }
func (b byTime) Swap(i, j int)      { b.c.swap(i, j) }

// slopeBetween returns the slope from a to b, or a step when the keys share
// a time.
func slopeBetween(a, b Keyframe) float64 {
	diff := b.Time - a.Time
	if math.Abs(diff) <= approxZero {
		return StepTangent
	}
	return (b.Value - a.Value) / diff
}

func (c *Curve) updateTangents() {
	n := len(c.keys)
	switch n {
	case 0:
		return
	case 1:
		c.keys[0].InTangent = 0
		c.keys[0].OutTangent = 0
		return
	}

	// First key has no incoming segment.
	{
		k := &c.keys[0]
		k.InTangent = 0
		mode := c.modes[0]
		switch {
		case mode == TangentAuto || mode.Has(TangentOutAuto) || mode.Has(TangentOutLinear):
			k.OutTangent = slopeBetween(c.keys[0], c.keys[1])
		case mode.Has(TangentOutStep):
			k.OutTangent = StepTangent
		}
	}

	for i := 1; i < n-1; i++ {
		prev, next := c.keys[i-1], c.keys[i+1]
		k := &c.keys[i]
		mode := c.modes[i]

		switch mode {
		case TangentAuto:
			k.OutTangent = slopeBetween(prev, next)
			k.InTangent = k.OutTangent
			continue
		case TangentFree:
			k.InTangent = k.OutTangent
			continue
		}

		switch {
		case mode.Has(TangentInAuto):
			k.InTangent = slopeBetween(prev, next)
		case mode.Has(TangentInLinear):
			k.InTangent = slopeBetween(prev, *k)
		case mode.Has(TangentInStep):
			k.InTangent = StepTangent
		}

		switch {
		case mode.Has(TangentOutAuto):
			k.OutTangent = slopeBetween(prev, next)
		case mode.Has(TangentOutLinear):
			k.OutTangent = slopeBetween(*k, next)
		case mode.Has(TangentOutStep):
			k.OutTangent = StepTangent
		}
	}

	// Last key has no outgoing segment.
	{
		k := &c.keys[n-1]
		k.OutTangent = 0
		mode := c.modes[n-1]
		switch {
		case mode == TangentAuto || mode.Has(TangentInAuto) || mode.Has(TangentInLinear):
			k.InTangent = slopeBetween(c.keys[n-2], c.keys[n-1])
		case mode.Has(TangentInStep):
			k.InTangent = StepTangent
		}
	}
}
