package curved

// DraggedKey is a keyframe captured when a key drag starts. Ref follows the
// key as dragging reorders it; Original stays as captured.
type DraggedKey struct {
	Ref      KeyframeRef
	Original Keyframe
}

// DragHandler moves keys and tangent handles while the user drags them.
// Handlers must call Apply on every curve they change.
type DragHandler interface {
	// DragKeys moves each key in keys to its original position plus delta,
	// in curve space, and updates the refs to the keys' new indices.
	DragKeys(curves []CurveInfo, keys []DraggedKey, delta Vec2)
	// DragTangent points a tangent handle at pointer, in curve space.
	DragTangent(curves []CurveInfo, ref TangentRef, pointer Vec2)
}

// KeyframeDragger is the default DragHandler.
type KeyframeDragger struct{}

// DragKeys implements DragHandler.
func (KeyframeDragger) DragKeys(curves []CurveInfo, keys []DraggedKey, delta Vec2) {
	touched := make([]bool, len(curves))
	for i := range keys {
		k := &keys[i]
		c := curves[k.Ref.Curve].Curve
		idx := c.UpdateKeyframe(k.Ref.Key, k.Original.Time+delta.X, k.Original.Value+delta.Y)
		if idx < 0 {
			continue
		}
		// Keys of one curve that passed each other shift by one.
		for j := range keys {
			o := &keys[j]
			if j == i || o.Ref.Curve != k.Ref.Curve {
				continue
			}
			switch {
			case o.Ref.Key > k.Ref.Key && o.Ref.Key <= idx:
				o.Ref.Key--
			case o.Ref.Key < k.Ref.Key && o.Ref.Key >= idx:
				o.Ref.Key++
			}
		}
		k.Ref.Key = idx
		touched[k.Ref.Curve] = true
	}
	for ci, t := range touched {
		if t {
			curves[ci].Curve.Apply()
		}
	}
}

// DragTangent implements DragHandler. A handle dragged past its key's
// vertical axis becomes a step. Under TangentFree both sides follow the
// dragged handle.
func (KeyframeDragger) DragTangent(curves []CurveInfo, ref TangentRef, pointer Vec2) {
	c := curves[ref.Curve].Curve
	k, ok := c.Keyframe(ref.Key)
	if !ok {
		return
	}
	normal := pointer.Sub(Vec2{k.Time, k.Value}).Normalize()

	var tangent float64
	switch ref.Type {
	case TangentIn:
		if normal.X >= 0 {
			tangent = StepTangent
		} else {
			tangent = -NormalToTangent(normal)
		}
	default:
		if normal.X <= 0 {
			tangent = StepTangent
		} else {
			tangent = NormalToTangent(normal)
		}
	}

	if c.TangentMode(ref.Key) == TangentFree {
		k.InTangent, k.OutTangent = tangent, tangent
	} else if ref.Type == TangentIn {
		k.InTangent = tangent
	} else {
		k.OutTangent = tangent
	}
	c.SetKeyframe(ref.Key, k)
	c.Apply()
}
