package curved

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Keyframe is a single control point of a curve. A tangent equal to +Inf marks
// a step: the curve holds its value across that side of the key.
type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"inTangent"`
	OutTangent float64 `yaml:"outTangent"`
}

// keyframeJSON is the JSON form of a Keyframe. JSON has no infinity, so step
// tangents are written as the string "step".
type keyframeJSON struct {
	Time       float64     `json:"time"`
	Value      float64     `json:"value"`
	InTangent  jsonTangent `json:"inTangent"`
	OutTangent jsonTangent `json:"outTangent"`
}

type jsonTangent float64

func (t jsonTangent) MarshalJSON() ([]byte, error) {
	if IsStep(float64(t)) {
		return []byte(`"step"`), nil
	}
	return json.Marshal(float64(t))
}

func (t *jsonTangent) UnmarshalJSON(data []byte) error {
	if string(data) == `"step"` {
		*t = jsonTangent(StepTangent)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("tangent: %w", err)
	}
	*t = jsonTangent(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (k Keyframe) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyframeJSON{k.Time, k.Value, jsonTangent(k.InTangent), jsonTangent(k.OutTangent)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Keyframe) UnmarshalJSON(data []byte) error {
	var kj keyframeJSON
	if err := json.Unmarshal(data, &kj); err != nil {
		return err
	}
	*k = Keyframe{kj.Time, kj.Value, float64(kj.InTangent), float64(kj.OutTangent)}
	return nil
}

// StepTangent is the tangent value that marks a stepped side.
var StepTangent = math.Inf(1)

// IsStep reports whether tangent is the step sentinel.
func IsStep(tangent float64) bool {
	return math.IsInf(tangent, 1)
}

// TangentType selects the incoming or outgoing side of a keyframe.
type TangentType uint8

const (
	TangentIn  TangentType = 1 << 0
	TangentOut TangentType = 1 << 1
)

func (t TangentType) String() string {
	switch t {
	case TangentIn:
		return "in"
	case TangentOut:
		return "out"
	}
	return "unknown"
}

// TangentMode is a bit set describing how the tangents of a key are derived.
// The low two bits tell which side a flag belongs to; Auto (zero) and Free
// cover both sides at once.
type TangentMode uint32

const (
	TangentAuto      TangentMode = 0
	TangentInAuto    TangentMode = TangentMode(TangentIn) | 1<<2
	TangentInFree    TangentMode = TangentMode(TangentIn) | 1<<3
	TangentInLinear  TangentMode = TangentMode(TangentIn) | 1<<4
	TangentInStep    TangentMode = TangentMode(TangentIn) | 1<<5
	TangentOutAuto   TangentMode = TangentMode(TangentOut) | 1<<6
	TangentOutFree   TangentMode = TangentMode(TangentOut) | 1<<7
	TangentOutLinear TangentMode = TangentMode(TangentOut) | 1<<8
	TangentOutStep   TangentMode = TangentMode(TangentOut) | 1<<9
	TangentFree      TangentMode = 1 << 10
)

// Masks covering every flag of one side, side bit included.
const (
	tangentInMask  = TangentInAuto | TangentInFree | TangentInLinear | TangentInStep
	tangentOutMask = TangentOutAuto | TangentOutFree | TangentOutLinear | TangentOutStep
)

// Has reports whether every bit of flag is set in m. Auto is only "had" by
// the zero mode.
func (m TangentMode) Has(flag TangentMode) bool {
	if flag == TangentAuto {
		return m == TangentAuto
	}
	return m&flag == flag
}

// WithMode returns m with mode applied. Auto and Free replace the whole mode;
// a single-side flag replaces only the flags of that side and keeps the
// other side as it was. A key that was fully Auto or Free is first split into
// the matching per-side flags.
func (m TangentMode) WithMode(mode TangentMode) TangentMode {
	if mode == TangentAuto || mode == TangentFree {
		return mode
	}
	switch m {
	case TangentAuto:
		m = TangentInAuto | TangentOutAuto
	case TangentFree:
		m = TangentInFree | TangentOutFree
	}
	if mode&TangentMode(TangentIn) != 0 {
		m = m&^tangentInMask | mode&tangentInMask
	}
	if mode&TangentMode(TangentOut) != 0 {
		m = m&^tangentOutMask | mode&tangentOutMask
	}
	return m
}

// ShowsHandle reports whether the tangent handle of the given side is
// user-editable under m.
func (m TangentMode) ShowsHandle(t TangentType) bool {
	if m == TangentFree {
		return true
	}
	if t == TangentIn {
		return m.Has(TangentInFree)
	}
	return m.Has(TangentOutFree)
}

func (m TangentMode) String() string {
	switch m {
	case TangentAuto:
		return "Auto"
	case TangentFree:
		return "Free"
	}
	var parts []string
	names := []struct {
		flag TangentMode
		name string
	}{
		{TangentInAuto, "InAuto"}, {TangentInFree, "InFree"},
		{TangentInLinear, "InLinear"}, {TangentInStep, "InStep"},
		{TangentOutAuto, "OutAuto"}, {TangentOutFree, "OutFree"},
		{TangentOutLinear, "OutLinear"}, {TangentOutStep, "OutStep"},
	}
	for _, n := range names {
		if m.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "Auto"
	}
	return strings.Join(parts, "|")
}

// KeyframeRef identifies a keyframe by curve index and key index.
type KeyframeRef struct {
	Curve int
	Key   int
}

// TangentRef identifies one tangent handle of a keyframe.
type TangentRef struct {
	KeyframeRef
	Type TangentType
}

// TangentToNormal converts a slope into a unit direction. A step tangent
// points straight up.
func TangentToNormal(tangent float64) Vec2 {
	if IsStep(tangent) {
		return Vec2{0, 1}
	}
	return Vec2{1, tangent}.Normalize()
}

// NormalToTangent converts a unit direction back into a slope. The sign of the
// slope follows the sign of the Y component.
func NormalToTangent(n Vec2) float64 {
	if n.X == 0 {
		return StepTangent
	}
	t := math.Sqrt(math.Max(1/(n.X*n.X)-1, 0))
	if n.Y < 0 {
		return -t
	}
	return t
}
