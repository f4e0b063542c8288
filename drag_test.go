package curved

import "testing"

func TestKeyframeDragger_DragKeys(t *testing.T) {
	c := NewCurve([]Keyframe{{Time: 0}, {Time: 1}, {Time: 2}, {Time: 3}}, nil)
	curves := []CurveInfo{{Curve: c}}
	keys := []DraggedKey{
		{Ref: KeyframeRef{0, 0}, Original: Keyframe{Time: 0}},
		{Ref: KeyframeRef{0, 1}, Original: Keyframe{Time: 1}},
	}

	KeyframeDragger{}.DragKeys(curves, keys, Vec2{X: 1.5, Y: 1})

	times := keyTimes(c)
	want := []float64{1.5, 2, 2.5, 3}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("times = %v, want %v", times, want)
		}
	}
	if keys[0].Ref.Key != 0 || keys[1].Ref.Key != 2 {
		t.Errorf("refs = %v %v, want keys 0 and 2", keys[0].Ref, keys[1].Ref)
	}
	for _, k := range keys {
		got, _ := c.Keyframe(k.Ref.Key)
		if got.Time != k.Original.Time+1.5 || got.Value != 1 {
			t.Errorf("ref %v points at %+v", k.Ref, got)
		}
	}
}

func TestKeyframeDragger_DragKeysFromOriginal(t *testing.T) {
	c := NewCurve([]Keyframe{{Time: 0}, {Time: 5}}, nil)
	curves := []CurveInfo{{Curve: c}}
	keys := []DraggedKey{{Ref: KeyframeRef{0, 0}, Original: Keyframe{Time: 0}}}

	// Deltas are relative to the key as captured, not cumulative.
	KeyframeDragger{}.DragKeys(curves, keys, Vec2{X: 1})
	KeyframeDragger{}.DragKeys(curves, keys, Vec2{X: 2})
	if k, _ := c.Keyframe(0); k.Time != 2 {
		t.Errorf("time = %v, want 2", k.Time)
	}
}

func TestKeyframeDragger_DragTangent(t *testing.T) {
	c := NewCurve(
		[]Keyframe{{Time: 0}, {Time: 1}, {Time: 2}},
		[]TangentMode{TangentAuto, TangentInFree | TangentOutFree, TangentAuto},
	)
	curves := []CurveInfo{{Curve: c}}
	d := KeyframeDragger{}

	d.DragTangent(curves, TangentRef{KeyframeRef{0, 1}, TangentOut}, Vec2{2, 3})
	k, _ := c.Keyframe(1)
	if !approxEqual(k.OutTangent, 3) {
		t.Errorf("out tangent = %v, want 3", k.OutTangent)
	}
	if k.InTangent != 0 {
		t.Errorf("in tangent changed to %v", k.InTangent)
	}

	// The in handle sits left of the key: pointing down-left is a rising slope.
	d.DragTangent(curves, TangentRef{KeyframeRef{0, 1}, TangentIn}, Vec2{0, -0.5})
	k, _ = c.Keyframe(1)
	if !approxEqual(k.InTangent, 0.5) {
		t.Errorf("in tangent = %v, want 0.5", k.InTangent)
	}

	// Dragging past the key's vertical axis makes a step.
	d.DragTangent(curves, TangentRef{KeyframeRef{0, 1}, TangentOut}, Vec2{0.5, 1})
	k, _ = c.Keyframe(1)
	if !IsStep(k.OutTangent) {
		t.Errorf("out tangent = %v, want step", k.OutTangent)
	}

	d.DragTangent(curves, TangentRef{KeyframeRef{0, 9}, TangentOut}, Vec2{5, 5})
}

func TestKeyframeDragger_DragTangentFree(t *testing.T) {
	c := NewCurve(
		[]Keyframe{{Time: 0}, {Time: 1}, {Time: 2}},
		[]TangentMode{TangentAuto, TangentFree, TangentAuto},
	)
	KeyframeDragger{}.DragTangent([]CurveInfo{{Curve: c}}, TangentRef{KeyframeRef{0, 1}, TangentIn}, Vec2{0, 2})
	k, _ := c.Keyframe(1)
	if !approxEqual(k.InTangent, -2) || !approxEqual(k.OutTangent, -2) {
		t.Errorf("tangents = %v/%v, want -2/-2", k.InTangent, k.OutTangent)
	}
}
