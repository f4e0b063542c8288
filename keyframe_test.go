package curved

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestTangentMode_Has(t *testing.T) {
	m := TangentInStep | TangentOutLinear
	if !m.Has(TangentInStep) {
		t.Error("expected InStep")
	}
	if !m.Has(TangentOutLinear) {
		t.Error("expected OutLinear")
	}
	// InAuto shares the side bit with InStep but not its flag bit.
	if m.Has(TangentInAuto) {
		t.Error("unexpected InAuto")
	}
	if m.Has(TangentAuto) {
		t.Error("only the zero mode has Auto")
	}
	if !TangentAuto.Has(TangentAuto) {
		t.Error("zero mode should have Auto")
	}
}

func TestTangentMode_WithMode(t *testing.T) {
	tests := []struct {
		name string
		from TangentMode
		set  TangentMode
		want TangentMode
	}{
		{"auto to in step", TangentAuto, TangentInStep, TangentInStep | TangentOutAuto},
		{"free to out linear", TangentFree, TangentOutLinear, TangentInFree | TangentOutLinear},
		{"replace in side", TangentInStep | TangentOutFree, TangentInLinear, TangentInLinear | TangentOutFree},
		{"replace out side", TangentInStep | TangentOutFree, TangentOutAuto, TangentInStep | TangentOutAuto},
		{"back to auto", TangentInStep | TangentOutFree, TangentAuto, TangentAuto},
		{"to free", TangentInStep | TangentOutFree, TangentFree, TangentFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.WithMode(tt.set); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTangentMode_ShowsHandle(t *testing.T) {
	if TangentAuto.ShowsHandle(TangentIn) || TangentAuto.ShowsHandle(TangentOut) {
		t.Error("Auto should show no handles")
	}
	if !TangentFree.ShowsHandle(TangentIn) || !TangentFree.ShowsHandle(TangentOut) {
		t.Error("Free should show both handles")
	}
	m := TangentInFree | TangentOutStep
	if !m.ShowsHandle(TangentIn) || m.ShowsHandle(TangentOut) {
		t.Error("InFree|OutStep should show only the in handle")
	}
}

func TestTangentMode_String(t *testing.T) {
	if s := TangentAuto.String(); s != "Auto" {
		t.Errorf("Auto = %q", s)
	}
	if s := TangentFree.String(); s != "Free" {
		t.Errorf("Free = %q", s)
	}
	if s := (TangentInStep | TangentOutLinear).String(); s != "InStep|OutLinear" {
		t.Errorf("combined = %q", s)
	}
}

func TestTangentNormalRoundTrip(t *testing.T) {
	for _, slope := range []float64{0, 0.5, 2, -3, 100} {
		n := TangentToNormal(slope)
		if !approxEqual(n.Len(), 1) {
			t.Errorf("normal of %v has length %v", slope, n.Len())
		}
		if got := NormalToTangent(n); math.Abs(got-slope) > 1e-6 {
			t.Errorf("round trip of %v = %v", slope, got)
		}
	}

	n := TangentToNormal(StepTangent)
	if n != (Vec2{0, 1}) {
		t.Errorf("step normal = %v, want {0 1}", n)
	}
	if !IsStep(NormalToTangent(n)) {
		t.Error("vertical normal should convert back to a step")
	}
}

func TestKeyframeJSON_Step(t *testing.T) {
	k := Keyframe{Time: 1, Value: 2, InTangent: StepTangent, OutTangent: 0.5}
	data, err := json.Marshal(k)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"inTangent":"step"`) {
		t.Errorf("step tangent not encoded as a string: %s", data)
	}

	var got Keyframe
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !IsStep(got.InTangent) || got.OutTangent != 0.5 || got.Time != 1 || got.Value != 2 {
		t.Errorf("decoded %+v", got)
	}
}

func TestKeyframeJSON_BadTangent(t *testing.T) {
	var k Keyframe
	if err := json.Unmarshal([]byte(`{"time":0,"value":0,"inTangent":"flat"}`), &k); err == nil {
		t.Error("expected an error for an unknown tangent string")
	}
}
