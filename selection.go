package curved

import "sort"

// Selection is a per-curve set of selected keyframe indices. Accesses with
// indices outside the curves it was reset to are ignored.
type Selection struct {
	keys [][]bool
}

// Reset sizes the selection to the given curves and clears it.
func (s *Selection) Reset(curves []CurveInfo) {
	s.keys = make([][]bool, len(curves))
	for i, c := range curves {
		if c.Curve != nil {
			s.keys[i] = make([]bool, c.Curve.Len())
		}
	}
}

// Clear unselects everything while keeping the curve layout.
func (s *Selection) Clear() {
	for _, row := range s.keys {
		clear(row)
	}
}

// Set marks a keyframe as selected or unselected.
func (s *Selection) Set(ref KeyframeRef, selected bool) {
	if !s.valid(ref) {
		return
	}
	s.keys[ref.Curve][ref.Key] = selected
}

// grow extends the row of a curve to n keys, for keys added to the curve
// after the last Reset.
func (s *Selection) grow(curve, n int) {
	if curve < 0 || curve >= len(s.keys) || len(s.keys[curve]) >= n {
		return
	}
	row := make([]bool, n)
	copy(row, s.keys[curve])
	s.keys[curve] = row
}

// IsSelected reports whether a keyframe is selected. Out-of-range references
// are never selected.
func (s *Selection) IsSelected(ref KeyframeRef) bool {
	return s.valid(ref) && s.keys[ref.Curve][ref.Key]
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	for _, row := range s.keys {
		for _, v := range row {
			if v {
				return false
			}
		}
	}
	return true
}

// Refs lists the selected keyframes ordered by curve ascending and key
// descending, the order in which keys can be removed without shifting a key
// still waiting for removal.
func (s *Selection) Refs() []KeyframeRef {
	var refs []KeyframeRef
	for ci, row := range s.keys {
		for ki := len(row) - 1; ki >= 0; ki-- {
			if row[ki] {
				refs = append(refs, KeyframeRef{Curve: ci, Key: ki})
			}
		}
	}
	return refs
}

func (s *Selection) valid(ref KeyframeRef) bool {
	return ref.Curve >= 0 && ref.Curve < len(s.keys) &&
		ref.Key >= 0 && ref.Key < len(s.keys[ref.Curve])
}

// sortForRemoval orders refs by curve ascending and key descending.
func sortForRemoval(refs []KeyframeRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Curve != refs[j].Curve {
			return refs[i].Curve < refs[j].Curve
		}
		return refs[i].Key > refs[j].Key
	})
}
